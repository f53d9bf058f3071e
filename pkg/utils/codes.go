package utils

// ResponseCode business response code
type ResponseCode int

const (
	CodeSuccess ResponseCode = 0

	// Request errors
	CodeInvalidParam ResponseCode = 1001
	CodeUnauthorized ResponseCode = 1002
	CodeForbidden    ResponseCode = 1003
	CodeNotFound     ResponseCode = 1004
	CodeTooManyReqs  ResponseCode = 1005

	// Catalog and cart errors
	CodeProductNotFound ResponseCode = 2001
	CodeNotOwner        ResponseCode = 2002
	CodeEmptyCart       ResponseCode = 2003
	CodeStockNotEnough  ResponseCode = 2004

	// Payment errors
	CodeGatewayUnavailable ResponseCode = 3001
	CodeGatewayTimeout     ResponseCode = 3002
	CodeUnknownOrder       ResponseCode = 3003

	// System errors
	CodeInternalError ResponseCode = 5000
	CodeDatabaseError ResponseCode = 5001
)

// HTTPStatus maps a response code to the HTTP status it should ride on
func (c ResponseCode) HTTPStatus() int {
	switch c {
	case CodeSuccess:
		return 200
	case CodeInvalidParam, CodeEmptyCart, CodeStockNotEnough:
		return 400
	case CodeUnauthorized:
		return 401
	case CodeForbidden, CodeNotOwner:
		return 403
	case CodeNotFound, CodeProductNotFound, CodeUnknownOrder:
		return 404
	case CodeTooManyReqs:
		return 429
	case CodeGatewayTimeout:
		return 504
	case CodeGatewayUnavailable:
		return 502
	default:
		return 500
	}
}
