package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"expense-tracker-go-be/apperror"
	"expense-tracker-go-be/auth"
	"expense-tracker-go-be/middleware"
	"expense-tracker-go-be/models"
	"expense-tracker-go-be/services"
)

// flexString accepts a JSON string or a bare JSON number, so clients may
// send "amount": 100 as well as "amount": "100".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = flexString(n.String())
	return nil
}

type credentialsRequest struct {
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Password  string `json:"password" form:"password"`
}

func (r credentialsRequest) credentials() services.Credentials {
	return services.Credentials{FirstName: r.FirstName, LastName: r.LastName, Password: r.Password}
}

type transactionRequest struct {
	Type        flexString `json:"type" form:"type"`
	Category    flexString `json:"category" form:"category"`
	Amount      flexString `json:"amount" form:"amount"`
	Date        flexString `json:"date" form:"date"`
	Description flexString `json:"description" form:"description"`
}

func (r transactionRequest) fields() models.TransactionFields {
	return models.TransactionFields{
		Type:        string(r.Type),
		Category:    string(r.Category),
		Amount:      string(r.Amount),
		Date:        string(r.Date),
		Description: string(r.Description),
	}
}

// parseBody decodes the request body into v. An empty body leaves v at its
// zero value so field validation reports what is missing.
func parseBody(c *fiber.Ctx, v interface{}) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return apperror.ErrInvalidBody.Wrap(err)
	}
	return nil
}

// caller returns the identity stored by the session middleware.
func caller(c *fiber.Ctx) (auth.Identity, error) {
	id, ok := middleware.Identity(c)
	if !ok {
		return auth.Identity{}, apperror.ErrMissingToken
	}
	return id, nil
}
