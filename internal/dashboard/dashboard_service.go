package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fenixfl1/CompuPay/internal/activitylog"
	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
	"github.com/fenixfl1/CompuPay/internal/shared/filter"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DepartmentsCacheKey = "dashboard:employees-by-department"
	StatisticsCacheKey  = "dashboard:user-statistics"
	SalaryCacheKey      = "dashboard:salary-by-department"
	PaymentsCacheKey    = "dashboard:payment-detail"
	statsCacheTTL       = 5 * time.Minute

	dateLayout    = "2006-01-02"
	maxRangeDays  = 366
	taskKeyPrefix = "dashboard:task-performance:"
)

var (
	ErrInvalidDate      = apperror.PayloadValidation("date_range dates must use the YYYY-MM-DD format")
	ErrInvalidDateRange = apperror.PayloadValidation("date_range end can not be before its start")
	ErrDateRangeTooLong = apperror.PayloadValidation(fmt.Sprintf("date_range can span at most %d days", maxRangeDays))
)

// conceptPalette colours concepts in name order, wrapping when exhausted.
var conceptPalette = [...]string{
	"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#8884D8",
	"#82CA9D", "#A4DE6C", "#D0ED57", "#FA8072", "#8DD1E1",
}

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var hundred = decimal.NewFromInt(100)

type Service interface {
	RecentActivities(ctx context.Context, res filter.Result, page response.Page) ([]activitylog.ActivityResponse, int64, error)
	EmployeesByDepartment(ctx context.Context) ([]DepartmentCount, error)
	UserStatistics(ctx context.Context) (UserStatistics, error)
	SalaryByDepartment(ctx context.Context) ([]DepartmentSalary, error)
	TaskPerformance(ctx context.Context, cond TaskPerformanceCondition) (TaskPerformance, error)
	PaymentDetail(ctx context.Context) (PaymentDetail, error)
}

type service struct {
	repo     Repository
	activity activitylog.Service
	rdb      *redis.Client
	sf       *singleflight.Group
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	activity activitylog.Service,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		repo:     repo,
		activity: activity,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) RecentActivities(
	ctx context.Context,
	res filter.Result,
	page response.Page,
) ([]activitylog.ActivityResponse, int64, error) {
	if s.activity == nil {
		return []activitylog.ActivityResponse{}, 0, nil
	}
	return s.activity.Recent(ctx, res, page)
}

func (s *service) EmployeesByDepartment(ctx context.Context) ([]DepartmentCount, error) {
	return cached(ctx, s, DepartmentsCacheKey, func() ([]DepartmentCount, error) {
		rows, err := s.repo.EmployeesByDepartment(ctx)
		if rows == nil {
			rows = []DepartmentCount{}
		}
		return rows, err
	})
}

func (s *service) UserStatistics(ctx context.Context) (UserStatistics, error) {
	return cached(ctx, s, StatisticsCacheKey, func() (UserStatistics, error) {
		now := s.now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

		counts, err := s.repo.UserCounts(ctx, monthStart)
		if err != nil {
			return UserStatistics{}, err
		}
		months, err := s.repo.EmployeesByMonth(ctx)
		if err != nil {
			return UserStatistics{}, err
		}

		title := cases.Title(language.Spanish)
		chart := make([]MonthCount, len(months))
		for i, m := range months {
			chart[i] = MonthCount{Month: title.String(monthNames[m.Month.Month()-1]), Value: m.Value}
		}

		return UserStatistics{
			TotalRegistered: counts.TotalRegistered,
			TotalInterns:    counts.TotalInterns,
			NewEmployees:    counts.NewEmployees,
			TotalEmployees:  counts.TotalEmployees,
			LineChart:       chart,
		}, nil
	})
}

func (s *service) SalaryByDepartment(ctx context.Context) ([]DepartmentSalary, error) {
	return cached(ctx, s, SalaryCacheKey, func() ([]DepartmentSalary, error) {
		rows, err := s.repo.SalaryByDepartment(ctx)
		if err != nil {
			return nil, err
		}
		return salaryDistribution(rows), nil
	})
}

// salaryDistribution turns per-department sums into totals, averages and
// each department's share of the grand total.
func salaryDistribution(rows []SalaryRow) []DepartmentSalary {
	grand := decimal.Zero
	for _, r := range rows {
		grand = grand.Add(r.Total)
	}

	out := make([]DepartmentSalary, len(rows))
	for i, r := range rows {
		d := DepartmentSalary{
			Department: r.Department,
			Fill:       r.Fill,
			Total:      r.Total.Round(2),
			Average:    decimal.Zero,
			Percent:    decimal.Zero,
		}
		if r.Headcount > 0 {
			d.Average = r.Total.Div(decimal.NewFromInt(r.Headcount)).Round(2)
		}
		if grand.IsPositive() {
			d.Percent = r.Total.Mul(hundred).Div(grand).Round(2)
		}
		out[i] = d
	}
	return out
}

// TaskPerformance reports, for every day of the range, how many tasks each
// active department received.
func (s *service) TaskPerformance(ctx context.Context, cond TaskPerformanceCondition) (TaskPerformance, error) {
	from, to, err := parseDateRange(cond.DateRange)
	if err != nil {
		return TaskPerformance{}, err
	}
	ids := slices.Clone(cond.Departments)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	key := taskPerformanceKey(from, to, ids)
	return cached(ctx, s, key, func() (TaskPerformance, error) {
		departments, err := s.repo.ActiveDepartments(ctx, ids)
		if err != nil {
			return TaskPerformance{}, err
		}
		counts, err := s.repo.TaskCountsByDay(ctx, from, to.AddDate(0, 0, 1), ids)
		if err != nil {
			return TaskPerformance{}, err
		}
		return taskPerformance(from, to, departments, counts), nil
	})
}

func (s *service) PaymentDetail(ctx context.Context) (PaymentDetail, error) {
	return cached(ctx, s, PaymentsCacheKey, func() (PaymentDetail, error) {
		rows, err := s.repo.PaymentTotalsByMonth(ctx)
		if err != nil {
			return PaymentDetail{}, err
		}
		return paymentDetail(rows), nil
	})
}

func parseDateRange(raw []string) (time.Time, time.Time, error) {
	if len(raw) != 2 {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	from, err := time.Parse(dateLayout, strings.TrimSpace(raw[0]))
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	to, err := time.Parse(dateLayout, strings.TrimSpace(raw[1]))
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if to.Sub(from) >= maxRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, ErrDateRangeTooLong
	}
	return from, to, nil
}

func taskPerformanceKey(from, to time.Time, ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return taskKeyPrefix + from.Format(dateLayout) + ":" + to.Format(dateLayout) + ":" + strings.Join(parts, ",")
}

// taskPerformance lays the sparse counts over every day in [from, to] so
// each day lists every department, zero when it got no task.
func taskPerformance(from, to time.Time, departments []DepartmentRef, counts []TaskCountRow) TaskPerformance {
	byDay := make(map[string]map[string]int64)
	for _, c := range counts {
		day := c.Day.Format(dateLayout)
		if byDay[day] == nil {
			byDay[day] = make(map[string]int64)
		}
		byDay[day][c.Department] += c.Total
	}

	out := TaskPerformance{Departments: departments}
	if out.Departments == nil {
		out.Departments = []DepartmentRef{}
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		tasks := make(map[string]int64, len(departments))
		for _, dep := range departments {
			tasks[dep.Name] = byDay[date][dep.Name]
		}
		out.Performance = append(out.Performance, DayPerformance{Date: date, Day: d.Day(), Tasks: tasks})
	}
	return out
}

// paymentDetail pivots (month, concept) totals into one row per month
// carrying every concept, zero filled.
func paymentDetail(rows []ConceptMonthRow) PaymentDetail {
	title := cases.Title(language.Spanish)

	var names []string
	var months []MonthPayments
	index := make(map[string]int)
	for _, r := range rows {
		if !slices.Contains(names, r.Concept) {
			names = append(names, r.Concept)
		}
		period := r.Month.Format("2006-01")
		i, ok := index[period]
		if !ok {
			i = len(months)
			index[period] = i
			months = append(months, MonthPayments{
				Month:    title.String(monthNames[r.Month.Month()-1]),
				Period:   period,
				Concepts: make(map[string]decimal.Decimal),
			})
		}
		months[i].Concepts[r.Concept] = months[i].Concepts[r.Concept].Add(r.Total)
	}
	slices.Sort(names)

	for _, m := range months {
		for _, name := range names {
			if _, ok := m.Concepts[name]; !ok {
				m.Concepts[name] = decimal.Zero
			}
		}
	}

	out := PaymentDetail{Data: months, Concepts: make([]ConceptColor, len(names))}
	if out.Data == nil {
		out.Data = []MonthPayments{}
	}
	for i, name := range names {
		out.Concepts[i] = ConceptColor{Concept: name, Fill: conceptPalette[i%len(conceptPalette)]}
	}
	return out
}

// cached serves key from redis when present. Misses for the same key share
// one load, whose result is written back with statsCacheTTL.
func cached[T any](ctx context.Context, s *service, key string, load func() (T, error)) (T, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var out T
			if err := json.Unmarshal([]byte(raw), &out); err == nil {
				return out, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		out, err := load()
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if data, err := json.Marshal(out); err == nil {
				if err := s.rdb.Set(ctx, key, data, statsCacheTTL).Err(); err != nil {
					s.logger.Warn("failed to cache dashboard data", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return out, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
