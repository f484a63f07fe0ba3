package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleExperience struct {
	Years *int `json:"years" validate:"required,gte=0"`
}

type sampleRequest struct {
	Name       string           `json:"name" validate:"required"`
	Phone      string           `json:"phone" validate:"required,phone10"`
	Birthdate  string           `json:"birtdate" validate:"required,date"`
	Experience sampleExperience `json:"experience"`
}

func TestValidateStruct(t *testing.T) {
	years := 5
	ok := sampleRequest{
		Name:       "Nguyen Van A",
		Phone:      "0901234567",
		Birthdate:  "1990-01-01",
		Experience: sampleExperience{Years: &years},
	}
	assert.Nil(t, ValidateStruct(ok))

	errs := ValidateStruct(sampleRequest{Phone: "09012", Birthdate: "yesterday"})
	assert.Equal(t, "This field is required", errs["name"])
	assert.Equal(t, "Phone must be exactly 10 digits", errs["phone"])
	assert.Contains(t, errs["birtdate"], "YYYY-MM-DD")
	assert.Equal(t, "This field is required", errs["experience.years"])
}

func TestFormatValidationErrors_Sorted(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{
		"phone": "bad",
		"name":  "missing",
	})
	assert.Equal(t, "name: missing; phone: bad", msg)
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("0901234567"))
	assert.False(t, IsValidPhone("090123456"))
	assert.False(t, IsValidPhone("09012345678"))
	assert.False(t, IsValidPhone("090123456a"))
}
