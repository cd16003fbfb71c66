package user_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/cost-manager/internal"
	"github.com/frahmantamala/cost-manager/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type mockUserRepository struct {
	users     map[int64]*user.User
	createErr error
	getErr    error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*user.User)}
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, userID int64) (*user.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.users[userID], nil
}

func (m *mockUserRepository) List(_ context.Context) ([]user.User, error) {
	var users []user.User
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

type mockTotaler struct {
	totals map[int64]float64
	err    error
}

func (m *mockTotaler) SumByUser(_ context.Context, userID int64) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.totals[userID], nil
}

var _ = Describe("UserService", func() {
	var (
		service *user.Service
		repo    *mockUserRepository
		totaler *mockTotaler
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		totaler = &mockTotaler{totals: make(map[int64]float64)}
		ctx = context.Background()

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(repo, totaler, lg)
	})

	validDTO := func() user.CreateUserDTO {
		return user.CreateUserDTO{
			ID:        123123,
			FirstName: "Mosh",
			LastName:  "Israeli",
			Birthday:  "1990-01-10",
		}
	}

	Describe("Create", func() {
		It("stores a valid user", func() {
			u, err := service.Create(ctx, validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(u.ID).To(Equal(int64(123123)))
			Expect(repo.users).To(HaveKey(int64(123123)))
		})

		DescribeTable("rejects invalid payloads with 400",
			func(mutate func(*user.CreateUserDTO)) {
				dto := validDTO()
				mutate(&dto)

				_, err := service.Create(ctx, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
				Expect(repo.users).To(BeEmpty())
			},
			Entry("missing id", func(d *user.CreateUserDTO) { d.ID = 0 }),
			Entry("missing first name", func(d *user.CreateUserDTO) { d.FirstName = " " }),
			Entry("missing last name", func(d *user.CreateUserDTO) { d.LastName = "" }),
			Entry("malformed birthday", func(d *user.CreateUserDTO) { d.Birthday = "10/01/1990" }),
		)

		It("rejects a duplicate id", func() {
			_, err := service.Create(ctx, validDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(ctx, validDTO())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("GetByID", func() {
		It("returns the user with their all-time expense total", func() {
			_, err := service.Create(ctx, validDTO())
			Expect(err).ToNot(HaveOccurred())
			totaler.totals[123123] = 511

			got, err := service.GetByID(ctx, 123123)

			Expect(err).ToNot(HaveOccurred())
			Expect(got.FirstName).To(Equal("Mosh"))
			Expect(got.Total).To(Equal(511.0))
		})

		It("returns the canonical 404 for an unknown id", func() {
			_, err := service.GetByID(ctx, 999999)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
			Expect(appErr.Message).To(Equal("User does not exist"))
		})

		It("wraps totaler failures as internal errors", func() {
			_, err := service.Create(ctx, validDTO())
			Expect(err).ToNot(HaveOccurred())
			totaler.err = errors.New("db down")

			_, err = service.GetByID(ctx, 123123)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
		})
	})

	Describe("List", func() {
		It("returns an empty slice, not null, when there are no users", func() {
			users, err := service.List(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(users).ToNot(BeNil())
			Expect(users).To(BeEmpty())
		})
	})
})
