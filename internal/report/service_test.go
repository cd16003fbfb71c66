package report_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/frahmantamala/cost-manager/internal"
	"github.com/frahmantamala/cost-manager/internal/expense"
	"github.com/frahmantamala/cost-manager/internal/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// Mock expense reader for testing
type mockExpenseReader struct {
	records []expense.Expense
	calls   int
	err     error
}

func (m *mockExpenseReader) FindForPeriod(_ context.Context, userID int64, from, to time.Time) ([]expense.Expense, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var matched []expense.Expense
	for _, rec := range m.records {
		if rec.UserID != userID {
			continue
		}
		if !rec.CreatedAt.Before(from) && rec.CreatedAt.Before(to) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Mock cache backed by a map keyed on (user, year, month)
type mockCache struct {
	entries     map[[3]int64]report.CategorizedReport
	lookupErr   error
	storeErr    error
	storeCalls  int
	lookupCalls int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[[3]int64]report.CategorizedReport)}
}

func (m *mockCache) Lookup(_ context.Context, userID int64, year, month int) (report.CategorizedReport, bool, error) {
	m.lookupCalls++
	if m.lookupErr != nil {
		return nil, false, m.lookupErr
	}
	rep, ok := m.entries[[3]int64{userID, int64(year), int64(month)}]
	return rep, ok, nil
}

func (m *mockCache) Store(_ context.Context, userID int64, year, month int, rep report.CategorizedReport) error {
	m.storeCalls++
	if m.storeErr != nil {
		return m.storeErr
	}
	m.entries[[3]int64{userID, int64(year), int64(month)}] = rep
	return nil
}

// Mock user verifier
type mockVerifier struct {
	exists bool
	err    error
}

func (m *mockVerifier) Exists(_ context.Context, userID int64) (bool, error) {
	return m.exists, m.err
}

var _ = Describe("ReportService", func() {
	var (
		service  *report.Service
		expenses *mockExpenseReader
		cache    *mockCache
		verifier *mockVerifier
		ctx      context.Context
	)

	// pinned clock: mid-February 2024
	now := time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		expenses = &mockExpenseReader{}
		cache = newMockCache()
		verifier = &mockVerifier{exists: true}
		ctx = context.Background()

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = report.NewService(expenses, cache, verifier, lg).
			WithClock(func() time.Time { return now })
	})

	Describe("input validation", func() {
		It("rejects a non-positive user id", func() {
			_, err := service.MonthlyReport(ctx, 0, 2024, 1)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.ID).To(Equal(internal.ErrIDBadInput))
		})

		It("rejects a month outside 1..12", func() {
			for _, month := range []int{0, 13, -1} {
				_, err := service.MonthlyReport(ctx, 123123, 2024, month)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
			}
		})
	})

	Describe("user verification", func() {
		It("returns 404 when the users service does not know the id", func() {
			verifier.exists = false

			_, err := service.MonthlyReport(ctx, 999999, 2024, 1)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
			Expect(appErr.Message).To(Equal("User does not exist"))
		})

		It("surfaces a verification failure as a dependency error, not 404", func() {
			verifier.err = errors.New("connection refused")

			_, err := service.MonthlyReport(ctx, 123123, 2024, 1)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
			Expect(appErr.ID).To(Equal(internal.ErrIDDependency))
			Expect(appErr.Message).To(Equal("failed to validate user"))
		})
	})

	Describe("past months", func() {
		addExpense := func(category, description string, sum float64, year int, month time.Month, day int) {
			expenses.records = append(expenses.records, expense.Expense{
				UserID:      123123,
				Sum:         sum,
				Category:    category,
				Description: description,
				CreatedAt:   time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
			})
		}

		It("computes on the first request and stores the report in the cache", func() {
			addExpense("food", "milk", 8, 2024, time.January, 5)

			envelope, err := service.MonthlyReport(ctx, 123123, 2024, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(envelope.Costs[0].Items).To(HaveLen(1))
			Expect(cache.storeCalls).To(Equal(1))
			Expect(expenses.calls).To(Equal(1))
		})

		It("serves the second request from the cache without touching the expense store", func() {
			addExpense("food", "milk", 8, 2024, time.January, 5)

			first, err := service.MonthlyReport(ctx, 123123, 2024, 1)
			Expect(err).ToNot(HaveOccurred())

			// a record injected after the first call must not appear
			addExpense("food", "late arrival", 99, 2024, time.January, 6)

			second, err := service.MonthlyReport(ctx, 123123, 2024, 1)
			Expect(err).ToNot(HaveOccurred())

			Expect(second.Costs).To(Equal(first.Costs))
			Expect(expenses.calls).To(Equal(1))
			Expect(cache.storeCalls).To(Equal(1))
		})

		It("builds the concrete January scenario and caches December independently", func() {
			addExpense("food", "milk", 8, 2024, time.January, 5)
			addExpense("housing", "rent share", 500, 2024, time.January, 20)
			addExpense("food", "bread", 3, 2023, time.December, 12)

			january, err := service.MonthlyReport(ctx, 123123, 2024, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(january.Costs[0].Items).To(ConsistOf(report.CostItem{Sum: 8, Description: "milk", Day: 5}))
			Expect(january.Costs[2].Items).To(ConsistOf(report.CostItem{Sum: 500, Description: "rent share", Day: 20}))
			Expect(january.Costs[1].Items).To(BeEmpty())
			Expect(january.Costs[3].Items).To(BeEmpty())
			Expect(january.Costs[4].Items).To(BeEmpty())

			december, err := service.MonthlyReport(ctx, 123123, 2023, 12)
			Expect(err).ToNot(HaveOccurred())
			Expect(december.Costs[0].Items).To(ConsistOf(report.CostItem{Sum: 3, Description: "bread", Day: 12}))

			Expect(cache.entries).To(HaveLen(2))
		})

		It("fails the request when the cache lookup errors", func() {
			cache.lookupErr = errors.New("db down")

			_, err := service.MonthlyReport(ctx, 123123, 2024, 1)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
		})

		It("still returns the computed report when the cache write fails", func() {
			addExpense("food", "milk", 8, 2024, time.January, 5)
			cache.storeErr = errors.New("db down")

			envelope, err := service.MonthlyReport(ctx, 123123, 2024, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(envelope.Costs[0].Items).To(HaveLen(1))
		})
	})

	Describe("current and future months", func() {
		It("always recomputes the current month and never caches it", func() {
			expenses.records = append(expenses.records, expense.Expense{
				UserID: 123123, Sum: 10, Category: "food", Description: "eggs",
				CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			})

			first, err := service.MonthlyReport(ctx, 123123, 2024, 2)
			Expect(err).ToNot(HaveOccurred())
			Expect(first.Costs[0].Items).To(HaveLen(1))

			expenses.records = append(expenses.records, expense.Expense{
				UserID: 123123, Sum: 4, Category: "food", Description: "butter",
				CreatedAt: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
			})

			second, err := service.MonthlyReport(ctx, 123123, 2024, 2)
			Expect(err).ToNot(HaveOccurred())
			Expect(second.Costs[0].Items).To(HaveLen(2))

			Expect(cache.storeCalls).To(BeZero())
			Expect(cache.lookupCalls).To(BeZero())
			Expect(expenses.calls).To(Equal(2))
		})

		It("treats future months like the current one", func() {
			_, err := service.MonthlyReport(ctx, 123123, 2025, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(cache.storeCalls).To(BeZero())
			Expect(cache.lookupCalls).To(BeZero())
		})
	})

	Describe("period boundaries", func() {
		It("includes the first day of the month and excludes the first day of the next", func() {
			expenses.records = []expense.Expense{
				{UserID: 123123, Sum: 1, Category: "food", Description: "first day",
					CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
				{UserID: 123123, Sum: 2, Category: "food", Description: "next month",
					CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			}

			envelope, err := service.MonthlyReport(ctx, 123123, 2024, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(envelope.Costs[0].Items).To(ConsistOf(
				report.CostItem{Sum: 1, Description: "first day", Day: 1}))
		})
	})
})
