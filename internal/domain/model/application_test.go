package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() ApplicationForm {
	return ApplicationForm{
		FirstName:      "Jane",
		LastName:       "Doe",
		Phone:          "+1 555 0100",
		CoverLetter:    "I would like to apply.",
		Experience:     "5 years",
		Resume:         "https://example.com/resume.pdf",
		ExpectedSalary: 95000,
	}
}

func TestApplicationFormValidate(t *testing.T) {
	form := validForm()
	require.NoError(t, form.Validate())

	tests := []struct {
		name    string
		mutate  func(*ApplicationForm)
		wantErr string
	}{
		{
			name:    "missing first name",
			mutate:  func(f *ApplicationForm) { f.FirstName = "" },
			wantErr: "first_name is required and cannot be empty",
		},
		{
			name:    "whitespace last name",
			mutate:  func(f *ApplicationForm) { f.LastName = "   " },
			wantErr: "last_name is required and cannot be empty",
		},
		{
			name:    "missing phone",
			mutate:  func(f *ApplicationForm) { f.Phone = "" },
			wantErr: "phone is required and cannot be empty",
		},
		{
			name:    "missing cover letter",
			mutate:  func(f *ApplicationForm) { f.CoverLetter = "" },
			wantErr: "cover_letter is required and cannot be empty",
		},
		{
			name:    "missing experience",
			mutate:  func(f *ApplicationForm) { f.Experience = "" },
			wantErr: "experience is required and cannot be empty",
		},
		{
			name:    "missing resume",
			mutate:  func(f *ApplicationForm) { f.Resume = "" },
			wantErr: "resume is required and cannot be empty",
		},
		{
			name:    "zero expected salary",
			mutate:  func(f *ApplicationForm) { f.ExpectedSalary = 0 },
			wantErr: "expected_salary is required",
		},
		{
			name:    "negative expected salary",
			mutate:  func(f *ApplicationForm) { f.ExpectedSalary = -1 },
			wantErr: "expected_salary is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := f.Validate()
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestApplicationFormValidatePortfolioOptional(t *testing.T) {
	form := validForm()
	form.Portfolio = ""
	assert.NoError(t, form.Validate())
}

func TestApplicantName(t *testing.T) {
	form := ApplicationForm{FirstName: " Jane ", LastName: " Doe "}
	assert.Equal(t, "Jane Doe", form.ApplicantName())

	form = ApplicationForm{FirstName: "Jane"}
	assert.Equal(t, "Jane", form.ApplicantName())
}

func TestApplicationStatusDecision(t *testing.T) {
	assert.True(t, ApplicationStatusAccepted.Decision())
	assert.True(t, ApplicationStatusRejected.Decision())
	assert.False(t, ApplicationStatusPending.Decision())
	assert.False(t, ApplicationStatus("bogus").Decision())
}

func TestApplicationStatusValid(t *testing.T) {
	assert.True(t, ApplicationStatusPending.Valid())
	assert.True(t, ApplicationStatusAccepted.Valid())
	assert.True(t, ApplicationStatusRejected.Valid())
	assert.False(t, ApplicationStatus("archived").Valid())
}

func TestPlaceholderJobSummary(t *testing.T) {
	summary := PlaceholderJobSummary()
	assert.Equal(t, "Unknown Company", summary.Company)
	assert.Equal(t, "Unknown Type", summary.Type)
	assert.Empty(t, summary.ID)
	assert.Nil(t, summary.Status)
}
