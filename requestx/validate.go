package requestx

import "github.com/clinia/apix/schemax"

// ValidateItem runs value through schema. Without schema the value is returned untouched.
// On success the normalized value produced by the schema is returned, on failure a
// request ValidationError carrying opts and the rejected value.
func ValidateItem(opts Options, value any, schema schemax.Schema) (any, error) {
	if schema == nil {
		return value, nil
	}

	res := schema.SafeParse(value)
	if !res.Success {
		verr := newValidationError(KindRequestValidation, opts, res.Issues)
		verr.Metadata.Request = value
		return nil, verr
	}

	return res.Data, nil
}

// ValidateResponse is ValidateItem for responses: failures are response ValidationErrors
// carrying the raw response.
func ValidateResponse(opts Options, response any, schema schemax.Schema) (any, error) {
	if schema == nil {
		return response, nil
	}

	res := schema.SafeParse(response)
	if !res.Success {
		verr := newValidationError(KindResponseValidation, opts, res.Issues)
		verr.Item = ItemResponse
		verr.Metadata.Response = response
		return nil, verr
	}

	return res.Data, nil
}
