package requestx

import (
	"context"

	"github.com/clinia/apix/errorx"
	"github.com/clinia/apix/schemax"
)

// AsyncOptionsSetter computes options only known at call time, i.e. a freshly minted token.
type AsyncOptionsSetter func(ctx context.Context) (Options, error)

type Schemas struct {
	Query    schemax.Schema
	Body     schemax.Schema
	Response schemax.Schema
}

// Execute resolves the final options, validates the query then the body, performs the call
// and validates the response.
//
// The order is fixed: a rejected query or body never reaches the transport, and the response
// is only validated once the call happened. Setter and transport errors are returned as is.
func Execute(ctx context.Context, base Options, setter AsyncOptionsSetter, schemas Schemas, transport Transport) (any, error) {
	if transport == nil {
		return nil, errorx.FailedPreconditionErrorf("no transport configured")
	}

	var async Options
	if setter != nil {
		var err error
		async, err = setter(ctx)
		if err != nil {
			return nil, err
		}
	}

	final := base.Merge(async)

	params, err := ValidateItem(final, final.Params, schemas.Query)
	if err != nil {
		return nil, withItem(err, ItemQuery)
	}
	final.Params = params

	data, err := ValidateItem(final, final.Data, schemas.Body)
	if err != nil {
		return nil, withItem(err, ItemBody)
	}
	final.Data = data

	response, err := transport.Do(ctx, final)
	if err != nil {
		return nil, err
	}

	return ValidateResponse(final, response, schemas.Response)
}

func withItem(err error, item Item) error {
	if verr, ok := err.(*ValidationError); ok {
		verr.Item = item
	}
	return err
}
