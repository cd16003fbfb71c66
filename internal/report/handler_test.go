package report_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/cost-manager/internal"
	"github.com/frahmantamala/cost-manager/internal/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubReportService struct {
	envelope *report.Envelope
	err      error
	gotUser  int64
	gotYear  int
	gotMonth int
}

func (s *stubReportService) MonthlyReport(_ context.Context, userID int64, year, month int) (*report.Envelope, error) {
	s.gotUser = userID
	s.gotYear = year
	s.gotMonth = month
	if s.err != nil {
		return nil, s.err
	}
	return s.envelope, nil
}

var _ = Describe("ReportHandler", func() {
	var (
		service *stubReportService
		handler *report.Handler
	)

	BeforeEach(func() {
		service = &stubReportService{
			envelope: &report.Envelope{
				UserID: 123123, Year: 2024, Month: 1,
				Costs: report.Build(nil),
			},
		}
		handler = report.NewHandler(service, nil)
	})

	get := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		handler.GetReport(rec, req)
		return rec
	}

	It("serves the envelope for a valid request", func() {
		rec := get("/api/report?userid=123123&year=2024&month=1")

		Expect(rec.Code).To(Equal(http.StatusOK))

		var body map[string]json.RawMessage
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body).To(HaveKey("userid"))
		Expect(body).To(HaveKey("year"))
		Expect(body).To(HaveKey("month"))
		Expect(body).To(HaveKey("costs"))
		Expect(service.gotUser).To(Equal(int64(123123)))
	})

	It("accepts id as a synonym for userid", func() {
		rec := get("/api/report?id=123123&year=2024&month=1")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(service.gotUser).To(Equal(int64(123123)))
	})

	DescribeTable("rejects non-numeric parameters with 400",
		func(target string) {
			rec := get(target)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var body struct {
				ID      int    `json:"id"`
				Message string `json:"message"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.ID).To(Equal(400))
			Expect(body.Message).ToNot(BeEmpty())
		},
		Entry("missing userid", "/api/report?year=2024&month=1"),
		Entry("non-numeric userid", "/api/report?userid=abc&year=2024&month=1"),
		Entry("non-numeric year", "/api/report?userid=1&year=twenty&month=1"),
		Entry("non-numeric month", "/api/report?userid=1&year=2024&month=jan"),
	)

	It("maps user-not-found to 404 with the canonical message", func() {
		service.err = internal.ErrUserNotFound

		rec := get("/api/report?userid=999999&year=2024&month=1")

		Expect(rec.Code).To(Equal(http.StatusNotFound))

		var body struct {
			ID      int    `json:"id"`
			Message string `json:"message"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.ID).To(Equal(404))
		Expect(body.Message).To(Equal("User does not exist"))
	})

	It("maps verification failure to 500 with the dependency id", func() {
		service.err = internal.ErrUserVerification

		rec := get("/api/report?userid=123123&year=2024&month=1")

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))

		var body struct {
			ID      int    `json:"id"`
			Message string `json:"message"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.ID).To(Equal(internal.ErrIDDependency))
		Expect(body.Message).To(Equal("failed to validate user"))
	})
})
