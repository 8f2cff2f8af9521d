// Package devseed populates a development database with fake postings and
// candidate profiles.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/jobdeck/jobdeck-api/internal/data"
	"github.com/jobdeck/jobdeck-api/internal/domain/identity"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	"github.com/jobdeck/jobdeck-api/internal/service"
)

// Options controls how much data gets seeded.
type Options struct {
	Jobs       int
	Candidates int
	// Seed fixes the random source so repeated runs produce the same data.
	Seed uint64
}

// DefaultOptions returns the seeding volumes used by `jobdeck-admin db-seed`.
func DefaultOptions() Options {
	return Options{Jobs: 40, Candidates: 20, Seed: 1}
}

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB     *sql.DB
	jobs   *service.JobService
	users  *service.UserService
	notifs *data.NotificationRepo
}

// NewServices constructs the services used for seeding from the provided DB.
func NewServices(db *sql.DB, logger *slog.Logger) Services {
	jobRepo := data.NewJobRepo(db, logger)
	userRepo := data.NewUserRepo(db, logger)

	return Services{
		DB: db,
		jobs: service.MustNewJobService(service.JobServiceOptions{
			Repo:   jobRepo,
			Logger: logger,
		}),
		users: service.MustNewUserService(service.UserServiceOptions{
			Repo:   userRepo,
			Logger: logger,
		}),
		notifs: data.NewNotificationRepo(db, logger),
	}
}

// Run executes the seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, opts Options, logger *slog.Logger) error {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))

	employer := identity.Identity{
		ID:    "seed-employer",
		Role:  model.RoleEmployer,
		Email: "employer@seed.local",
		Name:  "Seed Employer",
	}
	if _, err := svcs.users.SaveProfile(ctx, employer, service.ProfileUpdate{
		Title:    "Talent Acquisition",
		Location: "Remote",
	}); err != nil {
		return fmt.Errorf("seed employer profile: %w", err)
	}

	created := 0
	var jobs []*model.Job
	for i := 0; i < opts.Jobs; i++ {
		req := fakeJob(rng)
		job, err := svcs.jobs.Create(ctx, employer, req)
		if err != nil {
			if logger != nil {
				logger.WarnContext(ctx, "seed job failed", "title", req.Title, "error", err)
			}
			continue
		}
		jobs = append(jobs, job)
		created++
	}
	if logger != nil {
		logger.InfoContext(ctx, "seeded jobs", "requested", opts.Jobs, "created", created)
	}

	seeded := 0
	var candidates []identity.Identity
	for i := 0; i < opts.Candidates; i++ {
		caller, update := fakeCandidate(rng, i)
		if _, err := svcs.users.SaveProfile(ctx, caller, update); err != nil {
			if logger != nil {
				logger.WarnContext(ctx, "seed candidate failed", "id", caller.ID, "error", err)
			}
			continue
		}
		candidates = append(candidates, caller)
		seeded++
	}
	if logger != nil {
		logger.InfoContext(ctx, "seeded candidates", "requested", opts.Candidates, "created", seeded)
	}

	notified := seedInbox(ctx, svcs, rng, employer.ID, jobs, candidates, logger)
	if logger != nil {
		logger.InfoContext(ctx, "seeded notifications", "created", notified)
	}

	return nil
}

// seedInboxSize caps the demo notifications created for the seed employer.
const seedInboxSize = 5

// seedInbox fills the seed employer's notification bell with a few
// new-application entries so the feed and unread badge have content to show.
func seedInbox(
	ctx context.Context,
	svcs Services,
	rng *rand.Rand,
	employerID string,
	jobs []*model.Job,
	candidates []identity.Identity,
	logger *slog.Logger,
) int {
	if svcs.notifs == nil || len(jobs) == 0 || len(candidates) == 0 {
		return 0
	}

	n := seedInboxSize
	if n > len(jobs) {
		n = len(jobs)
	}
	if n > len(candidates) {
		n = len(candidates)
	}

	notified := 0
	for i := 0; i < n; i++ {
		job := pick(rng, jobs)
		candidate := candidates[i]
		req := model.CreateNotificationRequest{
			RecipientID:   employerID,
			Type:          model.NotificationTypeNewApplication,
			JobID:         job.ID,
			JobTitle:      job.Title,
			ApplicantID:   candidate.ID,
			ApplicantName: candidate.Name,
			CompanyName:   job.Company,
			Message:       fmt.Sprintf("%s applied for %s", candidate.Name, job.Title),
			Severity:      "info",
		}
		if _, err := svcs.notifs.Create(ctx, req); err != nil {
			if logger != nil {
				logger.WarnContext(ctx, "seed notification failed", "job_id", job.ID, "error", err)
			}
			continue
		}
		notified++
	}
	return notified
}

var skillsByCategory = map[string][]string{
	"Frontend": {
		"React", "Vue.js", "Angular", "JavaScript", "TypeScript", "HTML5", "CSS3",
		"Redux", "Webpack", "Tailwind CSS", "Next.js", "Jest",
	},
	"Backend": {
		"Go", "Node.js", "Python", "Java", "PostgreSQL", "Redis", "RESTful APIs",
		"GraphQL", "Docker", "Kubernetes", "gRPC",
	},
	"DevOps": {
		"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Terraform",
		"CI/CD", "Linux", "Ansible", "Monitoring",
	},
	"Data": {
		"Python", "SQL", "Machine Learning", "TensorFlow", "PyTorch", "Pandas",
		"Spark", "Statistics", "Data Visualization",
	},
	"Mobile": {
		"iOS", "Android", "Swift", "Kotlin", "React Native", "Flutter",
		"Mobile Testing", "Push Notifications",
	},
}

var companies = []string{
	"TechMahindra Solutions", "Infosys Digital", "Wipro Technologies",
	"HCL TechVision", "Tata Consultancy Services", "Accenture India",
	"Deutsche Bank Tech", "SAP Labs", "Nimbus Systems", "Brightline Software",
}

var locations = []string{
	"Remote", "Hybrid", "Bangalore, Karnataka", "Mumbai, Maharashtra",
	"Pune, Maharashtra", "Hyderabad, Telangana", "San Francisco, USA",
	"New York, USA", "London, UK", "Berlin, Germany", "Singapore",
}

var benefits = []string{
	"Comprehensive health insurance", "Flexible working hours",
	"30 days paid time off", "Employee stock options", "Performance bonus",
	"Learning & development allowance", "Work from home setup allowance",
	"Gym membership reimbursement", "Relocation assistance", "Food coupons",
}

var jobTypes = []model.JobType{
	model.JobTypeFullTime, model.JobTypePartTime, model.JobTypeContract,
	model.JobTypeInternship, model.JobTypeRemote,
}

var seniorities = []string{"", "Senior", "Lead", "Staff", "Principal"}

var candidateNames = []string{
	"Priya Sharma", "Rahul Verma", "Ananya Iyer", "Arjun Patel", "Sneha Reddy",
	"Vikram Singh", "Meera Nair", "Karthik Rao", "Divya Menon", "Rohan Gupta",
	"Alice Weber", "Tom Becker", "Sara Lindgren", "James Okafor", "Lena Fischer",
}

var categoryNames = []string{"Frontend", "Backend", "DevOps", "Data", "Mobile"}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.IntN(len(values))]
}

func pickN(rng *rand.Rand, values []string, minCount, maxCount int) []string {
	n := minCount + rng.IntN(maxCount-minCount+1)
	if n > len(values) {
		n = len(values)
	}
	out := make([]string, 0, n)
	perm := rng.Perm(len(values))
	for _, idx := range perm[:n] {
		out = append(out, values[idx])
	}
	return out
}

func fakeJob(rng *rand.Rand) *model.CreateJobRequest {
	category := pick(rng, categoryNames)
	skills := pickN(rng, skillsByCategory[category], 4, 6)

	title := strings.TrimSpace(fmt.Sprintf("%s %s %s",
		pick(rng, seniorities), category, pick(rng, []string{"Engineer", "Developer", "Architect"})))

	minSalary := int64(60000 + rng.IntN(90)*1000)
	return &model.CreateJobRequest{
		Title:     title,
		Company:   pick(rng, companies),
		Location:  pick(rng, locations),
		Type:      pick(rng, jobTypes),
		SalaryMin: minSalary,
		SalaryMax: minSalary + int64(20000+rng.IntN(80)*1000),
		Skills:    skills,
		Benefits:  pickN(rng, benefits, 4, 7),
	}
}

func fakeCandidate(rng *rand.Rand, n int) (identity.Identity, service.ProfileUpdate) {
	name := pick(rng, candidateNames)
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "."))

	caller := identity.Identity{
		ID:    fmt.Sprintf("seed-candidate-%03d", n),
		Role:  model.RoleJobSeeker,
		Email: fmt.Sprintf("%s%d@seed.local", slug, n),
		Name:  name,
	}
	update := service.ProfileUpdate{
		Title: pick(rng, []string{
			"Software Engineer", "Full Stack Developer", "Frontend Developer",
			"Backend Developer", "DevOps Engineer", "Data Scientist",
		}),
		Location: pick(rng, locations),
		Bio:      fmt.Sprintf("%s with a focus on building reliable systems.", name),
		Skills:   pickN(rng, skillsByCategory["Backend"], 3, 6),
	}
	return caller, update
}
