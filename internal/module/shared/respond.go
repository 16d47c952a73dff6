package shared

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
)

// Map is a shorthand for ad hoc JSON bodies
type Map map[string]interface{}

func Respond(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	responseBody, err := json.Marshal(body)
	if err != nil {
		ctx.Error("Failed to serialize the response", fasthttp.StatusInternalServerError)
		return
	}

	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetBody(responseBody)
	ctx.Response.SetStatusCode(status)
}

// DecodeBody unmarshals a JSON request body, rejecting empty bodies
func DecodeBody(ctx *fasthttp.RequestCtx, v interface{}) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return NewValidationError("Request body is required")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return NewValidationError("Invalid request body: " + err.Error())
	}
	return nil
}
