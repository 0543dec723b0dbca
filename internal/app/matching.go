package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
)

// MinScore is the hard cutoff below which a scored job is not recommended.
const MinScore = 0.4

// ParseSkills normalizes a raw skill declaration into a clean list.
// Accepted forms, in order of preference:
//
//	JSON array:        ["Go","SQL"]
//	bracketed list:    ['Go', 'SQL']
//	comma-separated:   Go, SQL
//
// Entries are trimmed, lowercased, and deduplicated; empties are dropped.
// Unparsable input degrades to an empty list, never an error.
func ParseSkills(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var parts []string
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		var parsed []any
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			// Non-string entries are dropped, not stringified.
			for _, entry := range parsed {
				if skill, ok := entry.(string); ok {
					parts = append(parts, skill)
				}
			}
		} else {
			// Bracketed but not valid JSON, e.g. single-quoted entries.
			parts = strings.Split(raw[1:len(raw)-1], ",")
		}
	} else {
		parts = strings.Split(raw, ",")
	}

	seen := make(map[string]struct{}, len(parts))
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		skill := strings.ToLower(strings.Trim(strings.TrimSpace(part), `'"`))
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}
	return skills
}

// Recommend scores the candidate pool against the employee's declared
// skills and returns the surviving jobs, best match first. A job's score
// is the fraction of its required skills the employee covers; jobs below
// MinScore are dropped. Ties keep catalog order (creation time ascending).
// Every recommended job is recorded as an impression exactly once per
// employee.
func (s *Service) Recommend(ctx context.Context, employeeID uuid.UUID) ([]domain.Recommendation, error) {
	start := s.clock.Now()

	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	employeeSkills := make(map[string]struct{})
	for _, skill := range ParseSkills(employee.Skills) {
		employeeSkills[skill] = struct{}{}
	}

	jobs, err := s.jobs.ListCandidates(ctx, s.policy)
	if err != nil {
		return nil, err
	}

	recommendations := make([]domain.Recommendation, 0, len(jobs))
	for _, job := range jobs {
		score, matched := scoreJob(employeeSkills, job)
		if score < MinScore {
			continue
		}
		recommendations = append(recommendations, domain.Recommendation{
			Job:           job,
			Score:         score,
			MatchedSkills: matched,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	for _, rec := range recommendations {
		if _, err := s.impressions.RecordOnce(ctx, employeeID, rec.Job.ID); err != nil {
			slog.Error("Failed to record impression",
				"employee_id", employeeID.String(),
				"job_id", rec.Job.ID.String(),
				"error", err)
		}
	}

	if s.match != nil {
		s.match.CandidatesScored.Add(float64(len(jobs)))
		s.match.RecommendationsServed.Observe(float64(len(recommendations)))
		s.match.RecommendationDuration.Observe(s.clock.Since(start).Seconds())
	}
	return recommendations, nil
}

// scoreJob returns |employee ∩ job| / |job| where the job's skill set is
// its non-empty slots with duplicates collapsed, and the matched skills
// in slot order. A job with no required skills scores zero.
func scoreJob(employeeSkills map[string]struct{}, job domain.Job) (float64, []string) {
	required := make(map[string]struct{}, len(job.Skills))
	var matched []string
	for _, slot := range job.Skills {
		skill := strings.ToLower(strings.TrimSpace(slot))
		if skill == "" {
			continue
		}
		if _, ok := required[skill]; ok {
			continue
		}
		required[skill] = struct{}{}
		if _, ok := employeeSkills[skill]; ok {
			matched = append(matched, skill)
		}
	}
	if len(required) == 0 {
		return 0, nil
	}
	return float64(len(matched)) / float64(len(required)), matched
}
