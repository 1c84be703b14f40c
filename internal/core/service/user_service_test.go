package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hirepath/jobportal-api/internal/core/domain"
	"github.com/hirepath/jobportal-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Aadhaar == user.Aadhaar || u.PAN == user.PAN {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByAadhaar(_ context.Context, aadhaar string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Aadhaar == aadhaar {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByPAN(_ context.Context, pan string) (*domain.User, error) {
	for _, u := range r.users {
		if u.PAN == pan {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

type stubEventRepo struct {
	events []domain.AccountEvent
}

func (r *stubEventRepo) Insert(_ context.Context, event *domain.AccountEvent) error {
	r.events = append(r.events, *event)
	return nil
}

func (r *stubEventRepo) ListByUser(_ context.Context, userID string, limit int) ([]domain.AccountEvent, error) {
	var out []domain.AccountEvent
	for _, ev := range r.events {
		if ev.UserID == userID && len(out) < limit {
			out = append(out, ev)
		}
	}
	return out, nil
}

type stubUploader struct {
	imageCalls int
	rawCalls   int
	failImage  bool
	failRaw    bool
}

func (u *stubUploader) UploadImage(_ context.Context, data []byte, _ string) (string, error) {
	u.imageCalls++
	if u.failImage {
		return "", errors.New("storage unavailable")
	}
	return fmt.Sprintf("https://assets.example.com/profile/photo-%d", u.imageCalls), nil
}

func (u *stubUploader) UploadRaw(_ context.Context, r io.Reader, _ int64, filename string) (string, error) {
	u.rawCalls++
	if u.failRaw {
		return "", errors.New("storage unavailable")
	}
	_, _ = io.Copy(io.Discard, r)
	return "https://assets.example.com/resume/" + filename, nil
}

type stubIssuer struct{}

func (stubIssuer) Mint(userID string) (string, error) { return "tok-" + userID, nil }

func (stubIssuer) Verify(token string) (string, error) {
	return strings.TrimPrefix(token, "tok-"), nil
}

func newTestService(repo *stubUserRepo, events *stubEventRepo, uploader *stubUploader) *UserService {
	return NewUserService(repo, events, uploader, stubIssuer{}, nil, nil, zerolog.Nop())
}

func validRegisterInput() ports.RegisterInput {
	return ports.RegisterInput{
		Fullname:    "Ann",
		Email:       "a@x.com",
		PhoneNumber: "555",
		Password:    "pw123456",
		Aadhaar:     "111",
		PAN:         "AAA1",
		Role:        "job-seeker",
		Image:       &ports.ImageInput{Data: []byte("png-bytes"), ContentType: "image/png", Filename: "me.png"},
	}
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	uploader := &stubUploader{}
	svc := newTestService(repo, &stubEventRepo{}, uploader)

	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash != "" {
		t.Fatalf("returned user must be sanitized, got hash %q", user.PasswordHash)
	}
	if user.Profile.ProfilePhoto == "" {
		t.Fatalf("expected profile photo URL to be set")
	}
	if uploader.imageCalls != 1 {
		t.Fatalf("expected exactly one image upload, got %d", uploader.imageCalls)
	}

	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.PasswordHash == "pw123456" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw123456")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_MissingFields(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubEventRepo{}, &stubUploader{})

	in := validRegisterInput()
	in.Email = ""
	if _, err := svc.Register(context.Background(), in); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestUserService_Register_MissingImage(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubEventRepo{}, &stubUploader{})

	in := validRegisterInput()
	in.Image = nil
	if _, err := svc.Register(context.Background(), in); err != domain.ErrImageRequired {
		t.Fatalf("expected ErrImageRequired, got %v", err)
	}
}

func TestUserService_Register_DuplicateChecksShortCircuit(t *testing.T) {
	repo := newStubUserRepo()
	uploader := &stubUploader{}
	svc := newTestService(repo, &stubEventRepo{}, uploader)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	uploadsAfterFirst := uploader.imageCalls

	cases := []struct {
		name   string
		mutate func(*ports.RegisterInput)
		want   error
	}{
		{"email", func(in *ports.RegisterInput) { in.Aadhaar = "222"; in.PAN = "BBB2" }, domain.ErrEmailTaken},
		{"aadhaar", func(in *ports.RegisterInput) { in.Email = "b@x.com"; in.PAN = "BBB2" }, domain.ErrAadhaarTaken},
		{"pan", func(in *ports.RegisterInput) { in.Email = "b@x.com"; in.Aadhaar = "222" }, domain.ErrPANTaken},
	}
	for _, tc := range cases {
		in := validRegisterInput()
		tc.mutate(&in)
		if _, err := svc.Register(context.Background(), in); err != tc.want {
			t.Fatalf("%s conflict: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	// Conflicting requests must never reach the uploader.
	if uploader.imageCalls != uploadsAfterFirst {
		t.Fatalf("uploader called on conflicting registration")
	}
}

func TestUserService_Register_UploadFailureLeavesNoUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubEventRepo{}, &stubUploader{failImage: true})

	_, err := svc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user may be persisted after an upload failure")
	}
}

func TestUserService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubEventRepo{}, &stubUploader{})

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "a@x.com", "pw123456", "job-seeker")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatalf("login response must not carry the password hash")
	}
}

func TestUserService_Login_GenericCredentialError(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubEventRepo{}, &stubUploader{})

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPass := svc.Login(context.Background(), "a@x.com", "nope", "job-seeker")
	_, _, unknownEmail := svc.Login(context.Background(), "ghost@x.com", "pw123456", "job-seeker")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if unknownEmail != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	// Same error value: the message cannot distinguish the two cases.
	if wrongPass.Error() != unknownEmail.Error() {
		t.Fatalf("credential errors must be indistinguishable")
	}
}

func TestUserService_Login_RoleMismatch(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubEventRepo{}, &stubUploader{})

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "a@x.com", "pw123456", "recruiter"); err != domain.ErrRoleMismatch {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}

	// Role comparison is case-insensitive.
	if _, _, err := svc.Login(context.Background(), "a@x.com", "pw123456", "Job-Seeker"); err != nil {
		t.Fatalf("case-insensitive role match failed: %v", err)
	}
}

func registerTestUser(t *testing.T, svc *UserService) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

func TestUserService_UpdateProfile_PartialMerge(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubEventRepo{}, &stubUploader{})
	user := registerTestUser(t, svc)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Bio: "new bio"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Profile.Bio != "new bio" {
		t.Fatalf("bio not applied: %+v", updated.Profile)
	}
	if updated.Fullname != "Ann" || updated.Email != "a@x.com" || updated.PhoneNumber != "555" {
		t.Fatalf("untouched fields were modified: %+v", updated)
	}
	if len(updated.Profile.Skills) != 0 {
		t.Fatalf("skills must stay unchanged, got %v", updated.Profile.Skills)
	}
	if updated.PasswordHash != "" {
		t.Fatalf("update response must not carry the password hash")
	}
}

func TestUserService_UpdateProfile_SkillsReplacedWholesale(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubEventRepo{}, &stubUploader{})
	user := registerTestUser(t, svc)

	if _, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Skills: "java, python"}); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Skills: "go,rust,ts"})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}

	want := []string{"go", "rust", "ts"}
	if len(updated.Profile.Skills) != len(want) {
		t.Fatalf("expected %v, got %v", want, updated.Profile.Skills)
	}
	for i, s := range want {
		if updated.Profile.Skills[i] != s {
			t.Fatalf("expected %v, got %v", want, updated.Profile.Skills)
		}
	}
}

func TestUserService_UpdateProfile_Resume(t *testing.T) {
	repo := newStubUserRepo()
	uploader := &stubUploader{}
	svc := newTestService(repo, &stubEventRepo{}, uploader)
	user := registerTestUser(t, svc)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{
		Resume: &ports.ResumeInput{
			Reader:   strings.NewReader("%PDF-1.4"),
			Size:     8,
			Filename: "cv.pdf",
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Profile.Resume == "" {
		t.Fatalf("resume URL not stored")
	}
	if updated.Profile.ResumeOriginalName != "cv.pdf" {
		t.Fatalf("original filename not stored: %+v", updated.Profile)
	}
	if uploader.rawCalls != 1 {
		t.Fatalf("expected one raw upload, got %d", uploader.rawCalls)
	}
}

func TestUserService_UpdateProfile_ResumeUploadFailureAborts(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, &stubEventRepo{}, &stubUploader{failRaw: true})
	user := registerTestUser(t, svc)

	_, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{
		Bio:    "should not persist",
		Resume: &ports.ResumeInput{Reader: strings.NewReader("x"), Size: 1, Filename: "cv.pdf"},
	})
	if !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.Profile.Bio != "" {
		t.Fatalf("partial update persisted after upload failure")
	}
}

func TestUserService_UpdateProfile_UnknownIdentity(t *testing.T) {
	svc := newTestService(newStubUserRepo(), &stubEventRepo{}, &stubUploader{})

	if _, err := svc.UpdateProfile(context.Background(), "missing", ports.UpdateProfileInput{Bio: "x"}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

type stubCache struct {
	entries map[string]*domain.User
	gets    int
	hits    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*domain.User)}
}

func (c *stubCache) Get(_ context.Context, userID string) (*domain.User, error) {
	c.gets++
	if u, ok := c.entries[userID]; ok {
		c.hits++
		return cloneUser(u), nil
	}
	return nil, nil
}

func (c *stubCache) Set(_ context.Context, userID string, user *domain.User) error {
	c.entries[userID] = cloneUser(user)
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, userID string) error {
	delete(c.entries, userID)
	return nil
}

func TestUserService_Profile_ReadThroughCache(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubCache()
	svc := NewUserService(repo, &stubEventRepo{}, &stubUploader{}, stubIssuer{}, cache, nil, zerolog.Nop())
	user := registerTestUser(t, svc)

	first, err := svc.Profile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if first.PasswordHash != "" {
		t.Fatalf("cached projection must be sanitized")
	}
	if cache.hits != 0 {
		t.Fatalf("first read must miss the cache")
	}

	if _, err := svc.Profile(context.Background(), user.ID); err != nil {
		t.Fatalf("second profile read failed: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("second read must hit the cache, hits=%d", cache.hits)
	}

	// A profile mutation drops the cached projection.
	if _, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Bio: "b"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, ok := cache.entries[user.ID]; ok {
		t.Fatalf("cache not invalidated on update")
	}
}

type stubRecorder struct {
	events []ports.AccountEventInput
}

func (r *stubRecorder) Enqueue(event ports.AccountEventInput) {
	r.events = append(r.events, event)
}

func TestUserService_RecordsActivity(t *testing.T) {
	repo := newStubUserRepo()
	recorder := &stubRecorder{}
	svc := NewUserService(repo, &stubEventRepo{}, &stubUploader{}, stubIssuer{}, nil, recorder, zerolog.Nop())

	user := registerTestUser(t, svc)
	if _, _, err := svc.Login(context.Background(), "a@x.com", "pw123456", "job-seeker"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Bio: "b"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	want := []string{domain.ActionRegistered, domain.ActionLoggedIn, domain.ActionProfileUpdated}
	if len(recorder.events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(recorder.events))
	}
	for i, action := range want {
		if recorder.events[i].Action != action {
			t.Fatalf("event %d: expected %s, got %s", i, action, recorder.events[i].Action)
		}
	}
}
