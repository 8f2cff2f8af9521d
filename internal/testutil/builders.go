package testutil

import (
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
)

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			Title:        "Backend Engineer",
			Company:      "Acme Corp",
			Location:     "Remote",
			Type:         model.JobTypeFullTime,
			SalaryMin:    90000,
			SalaryMax:    120000,
			Skills:       []string{"Go", "PostgreSQL"},
			PostedBy:     "employer-1",
			PostedByName: "Acme Recruiting",
		},
	}
}

// WithTitle sets the posting title.
func (b *JobRequestBuilder) WithTitle(title string) *JobRequestBuilder {
	b.req.Title = title
	return b
}

// WithCompany sets the company name.
func (b *JobRequestBuilder) WithCompany(company string) *JobRequestBuilder {
	b.req.Company = company
	return b
}

// WithType sets the employment type.
func (b *JobRequestBuilder) WithType(jobType model.JobType) *JobRequestBuilder {
	b.req.Type = jobType
	return b
}

// WithSalary sets the salary range.
func (b *JobRequestBuilder) WithSalary(minSalary, maxSalary int64) *JobRequestBuilder {
	b.req.SalaryMin = minSalary
	b.req.SalaryMax = maxSalary
	return b
}

// WithPostedBy sets the posting employer.
func (b *JobRequestBuilder) WithPostedBy(id, name string) *JobRequestBuilder {
	b.req.PostedBy = id
	b.req.PostedByName = name
	return b
}

// Build returns the constructed request.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}

// ApplicationFormBuilder provides a fluent interface for building ApplicationForm objects for testing.
type ApplicationFormBuilder struct {
	form *model.ApplicationForm
}

// NewApplicationForm creates a new ApplicationFormBuilder with all required fields filled.
func NewApplicationForm() *ApplicationFormBuilder {
	return &ApplicationFormBuilder{
		form: &model.ApplicationForm{
			FirstName:      "Jane",
			LastName:       "Doe",
			Phone:          "+1 555 0100",
			CoverLetter:    "I would like to apply.",
			Experience:     "5 years",
			Resume:         "https://example.com/resume.pdf",
			ExpectedSalary: 95000,
		},
	}
}

// WithName sets the applicant name fields.
func (b *ApplicationFormBuilder) WithName(first, last string) *ApplicationFormBuilder {
	b.form.FirstName = first
	b.form.LastName = last
	return b
}

// WithExpectedSalary sets the expected salary.
func (b *ApplicationFormBuilder) WithExpectedSalary(salary int64) *ApplicationFormBuilder {
	b.form.ExpectedSalary = salary
	return b
}

// WithPortfolio sets the optional portfolio link.
func (b *ApplicationFormBuilder) WithPortfolio(url string) *ApplicationFormBuilder {
	b.form.Portfolio = url
	return b
}

// Missing blanks out a required field so validation failures can be exercised.
func (b *ApplicationFormBuilder) Missing(field string) *ApplicationFormBuilder {
	switch field {
	case "first_name":
		b.form.FirstName = ""
	case "last_name":
		b.form.LastName = ""
	case "phone":
		b.form.Phone = ""
	case "cover_letter":
		b.form.CoverLetter = ""
	case "experience":
		b.form.Experience = ""
	case "resume":
		b.form.Resume = ""
	case "expected_salary":
		b.form.ExpectedSalary = 0
	}
	return b
}

// Build returns the constructed form.
func (b *ApplicationFormBuilder) Build() *model.ApplicationForm {
	return b.form
}
