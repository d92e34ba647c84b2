package errors

import (
	"bytes"
	"reflect"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// LedgerRejectedError represents a write reverted by the marketplace or
	// identity-registry contract logic, e.g. an unauthorized signer or an
	// invalid state transition.
	LedgerRejectedError ErrorCode = "ledger_rejected_error"
	// LedgerNetworkError represents a failure to reach the ledger or to
	// confirm a submitted transaction against it.
	LedgerNetworkError ErrorCode = "ledger_network_error"
	// LedgerDecodeError represents a malformed or undecodable ledger response.
	LedgerDecodeError ErrorCode = "ledger_decode_error"

	// MarketplaceInvalidOfferError represents an offer submitted with a zero
	// volume or price.
	MarketplaceInvalidOfferError ErrorCode = "marketplace_invalid_offer_error"
	// MarketplaceInvalidDemandError represents a demand submitted with a zero
	// volume or price.
	MarketplaceInvalidDemandError ErrorCode = "marketplace_invalid_demand_error"

	// PostgresConfigError represents an invalid or nil PostgreSQL configuration.
	PostgresConfigError ErrorCode = "postgres_config_error"
	// PostgresConnectionError represents an error when connecting to PostgreSQL.
	PostgresConnectionError ErrorCode = "postgres_connection_error"

	// KafkaPublishError represents an error when publishing messages to Kafka.
	KafkaPublishError ErrorCode = "kafka_publish_error"
)

// BaseError is an `error` type containing an array of ErrorDetails.
// This error provides basic functions for performing transformations
// on a list of ErrorDetails.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		buff.WriteString("; object: ")
		if err.Object != nil {
			buff.WriteString(reflect.TypeOf(err.Object).String())
		}
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// IsAnyCodeEqual check if any ErrorDetails code is equal with given code
func (b *BaseError) IsAnyCodeEqual(code string) bool {
	for _, d := range b.GetDetails() {
		if d.Code == code {
			return true
		}
	}
	return false
}
