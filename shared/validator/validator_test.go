package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"innkeep/shared/validator"
)

type stayKind string

func (k stayKind) Valid() bool {
	return k == "HOURLY" || k == "DAILY"
}

type guestRequest struct {
	Name  string   `json:"name"  validate:"required"`
	Phone string   `json:"phone" validate:"required,min=3"`
	Kind  stayKind `json:"kind"  validate:"required,enum"`
	Price float64  `json:"price" validate:"gte=0"`
	Type  string   `json:"type"  validate:"oneof=walkin regular vip"`
}

func validGuest() guestRequest {
	return guestRequest{
		Name:  "Tran Van A",
		Phone: "0901234567",
		Kind:  "HOURLY",
		Price: 150000,
		Type:  "walkin",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(req *guestRequest)
		expectError bool
	}{
		{
			name:        "valid request",
			mutate:      func(_ *guestRequest) {},
			expectError: false,
		},
		{
			name:        "missing name",
			mutate:      func(req *guestRequest) { req.Name = "" },
			expectError: true,
		},
		{
			name:        "short phone",
			mutate:      func(req *guestRequest) { req.Phone = "09" },
			expectError: true,
		},
		{
			name:        "unknown enum value",
			mutate:      func(req *guestRequest) { req.Kind = "WEEKLY" },
			expectError: true,
		},
		{
			name:        "negative price",
			mutate:      func(req *guestRequest) { req.Price = -1 },
			expectError: true,
		},
		{
			name:        "invalid customer type",
			mutate:      func(req *guestRequest) { req.Type = "other" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validGuest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "101",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid enum",
			field:       stayKind("DAILY"),
			tag:         "enum",
			expectError: false,
		},
		{
			name:        "invalid enum",
			field:       stayKind("daily"),
			tag:         "enum",
			expectError: true,
		},
		{
			name:        "number out of range",
			field:       150,
			tag:         "gte=0,lte=100",
			expectError: true,
		},
		{
			name:        "png data url",
			field:       "data:image/png;base64,iVBORw0KGgo=",
			tag:         "mimetypes=image/png image/jpeg",
			expectError: false,
		},
		{
			name:        "pdf data url rejected",
			field:       "data:application/pdf;base64,JVBERi0=",
			tag:         "mimetypes=image/png image/jpeg",
			expectError: true,
		},
		{
			name:        "plain string rejected as image",
			field:       "not-a-data-url",
			tag:         "mimetypes=image/png image/jpeg",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"Tran Van A","phone":"0901234567","kind":"HOURLY","price":1,"type":"vip"}`,
			expectError: false,
		},
		{
			name:        "enum violation",
			jsonBody:    `{"name":"Tran Van A","phone":"0901234567","kind":"MONTHLY","price":1,"type":"vip"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Tran Van A","phone":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data guestRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &guestRequest{Type: "walkin"}

	err := validator.ValidateStruct(data)
	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	if !strings.Contains(err.Error(), "required") {
		t.Errorf("expected message containing 'required', got: %s", err.Error())
	}

	data = &guestRequest{Name: "A", Phone: "123", Kind: "NOPE", Type: "walkin"}

	err = validator.ValidateStruct(data)
	if err == nil || !strings.Contains(err.Error(), "unknown value") {
		t.Errorf("expected enum message, got: %v", err)
	}
}

func TestValidationMessages_WireNames(t *testing.T) {
	tests := []struct {
		name string
		req  guestRequest
		want string
	}{
		{
			name: "every failed field is listed",
			req:  guestRequest{Phone: "09", Kind: "HOURLY", Type: "walkin"},
			want: "name is required; phone must be at least 3 characters",
		},
		{
			name: "numeric bound",
			req:  guestRequest{Name: "A", Phone: "0901", Kind: "DAILY", Price: -5, Type: "vip"},
			want: "price must be at least 0",
		},
		{
			name: "oneof lists choices",
			req:  guestRequest{Name: "A", Phone: "0901", Kind: "DAILY", Type: "group"},
			want: "type must be one of walkin regular vip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			assert.EqualError(t, err, tt.want)
		})
	}
}
