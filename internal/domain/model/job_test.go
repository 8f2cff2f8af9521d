package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJobRequest() CreateJobRequest {
	return CreateJobRequest{
		Title:     "Backend Engineer",
		Company:   "Acme Corp",
		Location:  "Remote",
		Type:      JobTypeFullTime,
		SalaryMin: 90000,
		SalaryMax: 120000,
		Skills:    []string{"Go", "PostgreSQL"},
		PostedBy:  "employer-1",
	}
}

func TestCreateJobRequestValidate(t *testing.T) {
	req := validJobRequest()
	require.NoError(t, req.Validate())

	tests := []struct {
		name    string
		mutate  func(*CreateJobRequest)
		wantErr string
	}{
		{
			name:    "missing title",
			mutate:  func(r *CreateJobRequest) { r.Title = "  " },
			wantErr: "title is required",
		},
		{
			name:    "missing company",
			mutate:  func(r *CreateJobRequest) { r.Company = "" },
			wantErr: "company is required",
		},
		{
			name:    "missing location",
			mutate:  func(r *CreateJobRequest) { r.Location = "" },
			wantErr: "location is required",
		},
		{
			name:    "invalid type",
			mutate:  func(r *CreateJobRequest) { r.Type = "Freelance" },
			wantErr: "invalid job type",
		},
		{
			name:    "negative salary",
			mutate:  func(r *CreateJobRequest) { r.SalaryMin = -1 },
			wantErr: "salary must be non-negative",
		},
		{
			name:    "inverted salary range",
			mutate:  func(r *CreateJobRequest) { r.SalaryMin = 150000 },
			wantErr: "salary_min cannot exceed salary_max",
		},
		{
			name:    "missing poster",
			mutate:  func(r *CreateJobRequest) { r.PostedBy = "" },
			wantErr: "posting employer is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validJobRequest()
			tt.mutate(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestCreateJobRequestValidateOpenEndedSalary(t *testing.T) {
	req := validJobRequest()
	req.SalaryMax = 0
	assert.NoError(t, req.Validate())
}

func TestCreateJobRequestNormalize(t *testing.T) {
	req := CreateJobRequest{
		Title:    "  Backend Engineer  ",
		Company:  " Acme Corp ",
		Location: " Remote ",
		Skills:   []string{" Go ", "", "  ", "PostgreSQL"},
		Benefits: []string{"Health insurance", " "},
	}
	req.Normalize()

	assert.Equal(t, "Backend Engineer", req.Title)
	assert.Equal(t, "Acme Corp", req.Company)
	assert.Equal(t, "Remote", req.Location)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, req.Skills)
	assert.Equal(t, []string{"Health insurance"}, req.Benefits)
}

func TestJobTypeUnmarshalText(t *testing.T) {
	var jt JobType
	require.NoError(t, jt.UnmarshalText([]byte("full-time")))
	assert.Equal(t, JobTypeFullTime, jt)

	require.NoError(t, jt.UnmarshalText([]byte("  REMOTE ")))
	assert.Equal(t, JobTypeRemote, jt)

	err := jt.UnmarshalText([]byte("gig"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JobType")
}

func TestJobStatusValid(t *testing.T) {
	assert.True(t, JobStatusActive.Valid())
	assert.True(t, JobStatusClosed.Valid())
	assert.False(t, JobStatus("draft").Valid())
}
