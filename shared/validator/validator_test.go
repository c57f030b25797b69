package validator_test

import (
	"strings"
	"testing"
	"visaprep/shared/validator"
)

type scheduleRequest struct {
	ApplicationID string `validate:"required,uuid4"                 json:"application_id"`
	Date          string `validate:"required,datetime=2006-01-02"   json:"date"`
	Time          string `validate:"required,datetime=15:04"        json:"time"`
	Modality      string `validate:"required,oneof=virtual in_person" json:"modality"`
	DurationMin   int    `validate:"omitempty,gte=15,lte=120"       json:"duration_min"`
}

func validRequest() *scheduleRequest {
	return &scheduleRequest{
		ApplicationID: "550e8400-e29b-41d4-a716-446655440000",
		Date:          "2026-10-01",
		Time:          "14:30",
		Modality:      "virtual",
		DurationMin:   30,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *scheduleRequest)
		expectError bool
	}{
		{
			name:        "valid struct",
			mutate:      func(r *scheduleRequest) {},
			expectError: false,
		},
		{
			name:        "missing required field",
			mutate:      func(r *scheduleRequest) { r.ApplicationID = "" },
			expectError: true,
		},
		{
			name:        "malformed uuid",
			mutate:      func(r *scheduleRequest) { r.ApplicationID = "not-a-uuid" },
			expectError: true,
		},
		{
			name:        "malformed date",
			mutate:      func(r *scheduleRequest) { r.Date = "01-10-2026" },
			expectError: true,
		},
		{
			name:        "malformed time",
			mutate:      func(r *scheduleRequest) { r.Time = "2:30 PM" },
			expectError: true,
		},
		{
			name:        "invalid modality",
			mutate:      func(r *scheduleRequest) { r.Modality = "telepathic" },
			expectError: true,
		},
		{
			name:        "duration out of range",
			mutate:      func(r *scheduleRequest) { r.DurationMin = 240 },
			expectError: true,
		},
		{
			name:        "zero duration is allowed",
			mutate:      func(r *scheduleRequest) { r.DurationMin = 0 },
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := validator.ValidateStruct(req)

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
			field:       "appt-1",
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
			name:        "valid number in range",
			field:       25,
			tag:         "gte=0,lte=100",
			expectError: false,
		},
		{
			name:        "number out of range",
			field:       150,
			tag:         "gte=0,lte=100",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "advisor",
			tag:         "oneof=client advisor admin",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "visitor",
			tag:         "oneof=client advisor admin",
			expectError: true,
		},
		{
			name:        "empty tag passes on zero value",
			field:       "",
			tag:         "empty",
			expectError: false,
		},
		{
			name:        "empty tag rejects populated value",
			field:       "something",
			tag:         "empty",
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
			jsonBody:    `{"application_id":"550e8400-e29b-41d4-a716-446655440000","date":"2026-10-01","time":"14:30","modality":"virtual"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON content",
			jsonBody:    `{"application_id":"550e8400-e29b-41d4-a716-446655440000","date":"bad","time":"14:30","modality":"virtual"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"application_id":}`,
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
			reader := strings.NewReader(tt.jsonBody)
			var data scheduleRequest
			err := validator.Validate(reader, &data)

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
	data := &scheduleRequest{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}

func TestValidationErrorHandling(t *testing.T) {
	data := &scheduleRequest{
		ApplicationID: "",          // required violation
		Date:          "invalid",   // datetime violation
		Time:          "invalid",   // datetime violation
		Modality:      "invalid",   // oneof violation
		DurationMin:   -1,          // gte violation
	}

	err := validator.ValidateStruct(data)
	if err == nil {
		t.Fatal("expected validation error")
	}

	if err.Error() == "" {
		t.Error("expected non-empty error message")
	}
}
