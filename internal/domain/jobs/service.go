package jobs

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/departments"
)

type Input struct {
	Title        string
	Description  string
	Requirements []string
	Location     string
	SalaryRange  string
	DepartmentID *primitive.ObjectID
	Status       string
}

// DepartmentLookup resolves department display names for listings and stats.
type DepartmentLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*departments.Department, error)
}

type Service struct {
	store       *Store
	departments DepartmentLookup
}

func NewService(store *Store, lookup DepartmentLookup) *Service {
	return &Service{store: store, departments: lookup}
}

func (s *Service) Create(ctx context.Context, in Input) (*Job, error) {
	job := &Job{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Requirements: cleanRequirements(in.Requirements),
		Location:     strings.TrimSpace(in.Location),
		SalaryRange:  strings.TrimSpace(in.SalaryRange),
		DepartmentID: in.DepartmentID,
		Status:       in.Status,
	}
	if err := s.store.Insert(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Job, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status, search string) ([]ListItem, error) {
	jobs, err := s.store.List(ctx, status, search)
	if err != nil {
		return nil, err
	}
	names := map[primitive.ObjectID]string{}
	items := make([]ListItem, 0, len(jobs))
	for _, job := range jobs {
		item := ListItem{Job: job, ApplicantCount: len(job.Applicants)}
		if job.DepartmentID != nil {
			item.DepartmentName = s.departmentName(ctx, names, *job.DepartmentID)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Service) departmentName(ctx context.Context, cache map[primitive.ObjectID]string, id primitive.ObjectID) string {
	if name, ok := cache[id]; ok {
		return name
	}
	name := ""
	if department, err := s.departments.FindByID(ctx, id); err == nil {
		name = department.Name
	}
	cache[id] = name
	return name
}

func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in Input) (*Job, error) {
	set := bson.M{
		"title":        strings.TrimSpace(in.Title),
		"description":  strings.TrimSpace(in.Description),
		"requirements": cleanRequirements(in.Requirements),
		"location":     strings.TrimSpace(in.Location),
		"salaryRange":  strings.TrimSpace(in.SalaryRange),
	}
	if in.DepartmentID != nil {
		set["departmentId"] = *in.DepartmentID
	}
	if in.Status != "" {
		set["status"] = in.Status
	}
	return s.store.Update(ctx, id, set)
}

func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Job, error) {
	return s.store.Update(ctx, id, bson.M{"status": status})
}

// Delete refuses to remove a job that has received applications, returning
// the applicant count alongside ErrHasApplicants.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (int, error) {
	job, err := s.store.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if len(job.Applicants) > 0 {
		return len(job.Applicants), ErrHasApplicants
	}
	return 0, s.store.Delete(ctx, id)
}

// Stats rolls up posting totals by status and department plus the overall
// applicant count.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	open, err := s.store.CountByStatus(ctx, StatusOpen)
	if err != nil {
		return nil, err
	}
	closed, err := s.store.CountByStatus(ctx, StatusClosed)
	if err != nil {
		return nil, err
	}

	all, err := s.store.List(ctx, "", "")
	if err != nil {
		return nil, err
	}

	names := map[primitive.ObjectID]string{}
	counts := map[string]*DepartmentCount{}
	applicants := 0
	for _, job := range all {
		applicants += len(job.Applicants)

		key := ""
		name := "Unassigned"
		if job.DepartmentID != nil {
			key = job.DepartmentID.Hex()
			if resolved := s.departmentName(ctx, names, *job.DepartmentID); resolved != "" {
				name = resolved
			}
		}
		if entry, ok := counts[key]; ok {
			entry.Count++
		} else {
			counts[key] = &DepartmentCount{DepartmentID: key, Name: name, Count: 1}
		}
	}

	byDepartment := make([]DepartmentCount, 0, len(counts))
	for _, entry := range counts {
		byDepartment = append(byDepartment, *entry)
	}
	sort.Slice(byDepartment, func(i, j int) bool { return byDepartment[i].Name < byDepartment[j].Name })

	return &Stats{
		TotalJobs:       len(all),
		OpenJobs:        open,
		ClosedJobs:      closed,
		TotalApplicants: applicants,
		ByDepartment:    byDepartment,
	}, nil
}

func cleanRequirements(requirements []string) []string {
	cleaned := make([]string, 0, len(requirements))
	for _, requirement := range requirements {
		requirement = strings.TrimSpace(requirement)
		if requirement != "" {
			cleaned = append(cleaned, requirement)
		}
	}
	return cleaned
}
