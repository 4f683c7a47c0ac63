package handler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"vouch/internal/attachment"
	attstore "vouch/internal/attachment/store"
	"vouch/internal/badge"
	jwttoken "vouch/internal/jwt_token"
	"vouch/internal/nonce"
	"vouch/internal/verification/handler"
	"vouch/internal/verification/models"
	"vouch/internal/verification/service"
	"vouch/internal/verification/store"
	"vouch/pkg/domain"
	"vouch/pkg/testutil"
)

const signingKey = "test-signing-key-0123456789abcdef"

type HandlerSuite struct {
	suite.Suite
	router      *chi.Mux
	meta        *store.InMemory
	attachments *attstore.InMemory
	service     *service.Service
	nonces      *nonce.Service
	jwt         *jwttoken.JWTService
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.meta = store.NewInMemory()
	s.attachments = attstore.NewInMemory()
	validator := attachment.NewValidator(s.attachments)

	registry, err := models.NewRegistry(models.DefaultDocumentTypes()...)
	s.Require().NoError(err)

	s.service = service.New(s.meta, validator, registry, service.WithLogger(logger))
	badges := badge.New(s.service, nil, time.Minute, logger)
	s.nonces = nonce.NewService(nonce.NewInMemoryStore(), time.Hour)
	s.jwt = jwttoken.NewJWTService(signingKey, "vouch", "vouch")

	h := handler.New(s.service, badges, s.nonces, validator, s.jwt, registry, logger)
	s.router = chi.NewRouter()
	h.Register(s.router)

	// A valid image upload owned by the seller under test.
	s.Require().NoError(s.attachments.Put(context.Background(), &attachment.Attachment{
		ID: 42, OwnerID: "u1", URL: "https://cdn.example/uploads/front.png",
	}))
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) sellerToken() string {
	token, err := s.jwt.GenerateSessionToken("u1", []string{domain.CapUploadFiles}, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *HandlerSuite) editorToken() string {
	token, err := s.jwt.GenerateSessionToken("editor-1",
		[]string{domain.CapEditUsers, domain.CapEditOthersAttachments}, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *HandlerSuite) issueNonce(scope, principalID string) string {
	token, err := s.nonces.Issue(context.Background(), scope, principalID)
	s.Require().NoError(err)
	return token
}

func (s *HandlerSuite) dashboardForm(nonceToken, docType, front, back string) url.Values {
	form := url.Values{}
	form.Set("action", "directorist_sv_save_documents")
	form.Set("nonce", nonceToken)
	form.Set("seller_document_type", docType)
	if front != "" {
		form.Set("seller_document_front", front)
	}
	if back != "" {
		form.Set("seller_document_back", back)
	}
	return form
}

type recordBody struct {
	SubjectID     string `json:"subject_id"`
	DocumentType  string `json:"document_type"`
	Status        string `json:"status"`
	Verified      bool   `json:"verified"`
	DocumentFront *struct {
		ID   int64  `json:"id"`
		URL  string `json:"url"`
		Kind string `json:"kind"`
	} `json:"document_front"`
}

type panelBody struct {
	Record        recordBody `json:"record"`
	DocumentTypes []struct {
		Key   string `json:"key"`
		Label string `json:"label"`
	} `json:"document_types"`
	Nonce string `json:"nonce"`
}

type envelopeBody struct {
	Success bool `json:"success"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

func (s *HandlerSuite) metaValue(subjectID, key string) string {
	v, err := s.meta.Get(context.Background(), subjectID, key)
	s.Require().NoError(err)
	return v
}

func (s *HandlerSuite) TestDashboardGet_RequiresSession() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/dashboard/documents")
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *HandlerSuite) TestDashboardGet_ReturnsDefaultsAndNonce() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/dashboard/documents")
	req.Header.Set("Authorization", "Bearer "+s.sellerToken())
	rr := testutil.DoRequest(s.router, req)

	s.Require().Equal(http.StatusOK, rr.Code)
	body := testutil.UnmarshalResponse[panelBody](s.T(), rr)
	s.Equal("u1", body.Record.SubjectID)
	s.Equal("unset", body.Record.Status)
	s.False(body.Record.Verified)
	s.Nil(body.Record.DocumentFront)
	s.NotEmpty(body.Nonce)
	// Placeholder plus the nine registered types.
	s.Len(body.DocumentTypes, 10)
}

func (s *HandlerSuite) TestDashboardSave_RoundTrip() {
	form := s.dashboardForm(s.issueNonce(nonce.ScopeDashboardAjax, "u1"), "passport", "42", "")
	req := testutil.NewFormRequest(s.T(), http.MethodPost, "/dashboard/documents/save", form)
	req.Header.Set("Authorization", "Bearer "+s.sellerToken())
	rr := testutil.DoRequest(s.router, req)

	s.Require().Equal(http.StatusOK, rr.Code)
	env := testutil.UnmarshalResponse[envelopeBody](s.T(), rr)
	s.True(env.Success)
	s.Equal("Saved successfully.", env.Data.Message)

	get := testutil.NewRequest(s.T(), http.MethodGet, "/dashboard/documents")
	get.Header.Set("Authorization", "Bearer "+s.sellerToken())
	rr = testutil.DoRequest(s.router, get)
	s.Require().Equal(http.StatusOK, rr.Code)
	body := testutil.UnmarshalResponse[panelBody](s.T(), rr)
	s.Equal("passport", body.Record.DocumentType)
	s.Equal("pending", body.Record.Status)
	s.Require().NotNil(body.Record.DocumentFront)
	s.Equal(int64(42), body.Record.DocumentFront.ID)
	s.Equal("image", body.Record.DocumentFront.Kind)
}

func (s *HandlerSuite) TestDashboardSave_Unauthenticated() {
	form := s.dashboardForm("irrelevant", "passport", "42", "")
	req := testutil.NewFormRequest(s.T(), http.MethodPost, "/dashboard/documents/save", form)
	rr := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusUnauthorized, rr.Code)
	env := testutil.UnmarshalResponse[envelopeBody](s.T(), rr)
	s.False(env.Success)
	s.Equal("You must be logged in.", env.Data.Message)
	s.Equal("", s.metaValue("u1", models.MetaKeyDocumentType))
}

func (s *HandlerSuite) TestDashboardSave_InvalidNonce() {
	form := s.dashboardForm("bogus-token", "passport", "42", "")
	req := testutil.NewFormRequest(s.T(), http.MethodPost, "/dashboard/documents/save", form)
	req.Header.Set("Authorization", "Bearer "+s.sellerToken())
	rr := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusForbidden, rr.Code)
	env := testutil.UnmarshalResponse[envelopeBody](s.T(), rr)
	s.False(env.Success)
	s.Equal("Invalid security token.", env.Data.Message)
	s.Equal("", s.metaValue("u1", models.MetaKeyDocumentType))
}

type outageNonceStore struct{}

func (outageNonceStore) Save(context.Context, nonce.Record, time.Duration) error {
	return errors.New("connection refused")
}

func (outageNonceStore) Find(context.Context, string) (nonce.Record, error) {
	return nonce.Record{}, errors.New("connection refused")
}

func (s *HandlerSuite) TestDashboardSave_NonceStoreOutage() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := attachment.NewValidator(s.attachments)
	registry, err := models.NewRegistry(models.DefaultDocumentTypes()...)
	s.Require().NoError(err)
	badges := badge.New(s.service, nil, time.Minute, logger)
	downNonces := nonce.NewService(outageNonceStore{}, time.Hour)

	h := handler.New(s.service, badges, downNonces, validator, s.jwt, registry, logger)
	router := chi.NewRouter()
	h.Register(router)

	form := s.dashboardForm("some-id.some-secret", "passport", "", "")
	req := testutil.NewFormRequest(s.T(), http.MethodPost, "/dashboard/documents/save", form)
	req.Header.Set("Authorization", "Bearer "+s.sellerToken())
	rr := testutil.DoRequest(router, req)

	s.Equal(http.StatusServiceUnavailable, rr.Code)
	env := testutil.UnmarshalResponse[envelopeBody](s.T(), rr)
	s.False(env.Success)
	s.Equal("Something went wrong. Please try again.", env.Data.Message)
	s.Equal("", s.metaValue("u1", models.MetaKeyDocumentType))
}

func (s *HandlerSuite) TestDashboardSave_WrongAction() {
	form := s.dashboardForm(s.issueNonce(nonce.ScopeDashboardAjax, "u1"), "passport", "", "")
	form.Set("action", "directorist_sv_delete_documents")
	req := testutil.NewFormRequest(s.T(), http.MethodPost, "/dashboard/documents/save", form)
	req.Header.Set("Authorization", "Bearer "+s.sellerToken())
	rr := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerSuite) TestDashboardSave_UnresolvableFileRetained() {
	first := s.dashboardForm(s.issueNonce(nonce.ScopeDashboardAjax, "u1"), "passport", "42", "")
	req := testutil.NewFormRequest(s.T(), http.MethodPost, "/dashboard/documents/save", first)
	req.Header.Set("Authorization", "Bearer "+s.sellerToken())
	s.Require().Equal(http.StatusOK, testutil.DoRequest(s.router, req).Code)

	second := s.dashboardForm(s.issueNonce(nonce.ScopeDashboardAjax, "u1"), "passport", "999", "")
	req = testutil.NewFormRequest(s.T(), http.MethodPost, "/dashboard/documents/save", second)
	req.Header.Set("Authorization", "Bearer "+s.sellerToken())
	rr := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusOK, rr.Code)
	s.Equal("42", s.metaValue("u1", models.MetaKeyDocumentFront))
}

func (s *HandlerSuite) TestAdminGet_RequiresEditCapability() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/admin/users/u2/verification")
	req.Header.Set("Authorization", "Bearer "+s.sellerToken())
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusForbidden, rr.Code)
}

func (s *HandlerSuite) TestAdminSave_RoundTripAndBadge() {
	save := map[string]any{
		"nonce":          s.issueNonce(nonce.ScopeAdminSave, "editor-1"),
		"document_type":  "passport",
		"document_front": "42",
		"document_back":  "",
		"verified":       true,
	}
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/users/u1/verification", save)
	req.Header.Set("Authorization", "Bearer "+s.editorToken())
	rr := testutil.DoRequest(s.router, req)

	s.Require().Equal(http.StatusOK, rr.Code)
	body := testutil.UnmarshalResponse[panelBody](s.T(), rr)
	s.Equal("passport", body.Record.DocumentType)
	s.True(body.Record.Verified)
	s.Equal("verified", body.Record.Status)
	s.Require().NotNil(body.Record.DocumentFront)
	s.Equal(int64(42), body.Record.DocumentFront.ID)
	s.NotEmpty(body.Nonce)

	badgeReq := testutil.NewRequest(s.T(), http.MethodGet, "/listings/authors/u1/badge")
	rr = testutil.DoRequest(s.router, badgeReq)
	s.Require().Equal(http.StatusOK, rr.Code)
	badgeBody := testutil.UnmarshalResponse[struct {
		SubjectID string `json:"subject_id"`
		Verified  bool   `json:"verified"`
	}](s.T(), rr)
	s.True(badgeBody.Verified)
}

func (s *HandlerSuite) TestAdminSave_InvalidNonceLeavesRecordUntouched() {
	save := map[string]any{
		"nonce":         "bogus-token",
		"document_type": "passport",
		"verified":      true,
	}
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/users/u1/verification", save)
	req.Header.Set("Authorization", "Bearer "+s.editorToken())
	rr := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusForbidden, rr.Code)
	s.Equal("", s.metaValue("u1", models.MetaKeyDocumentType))
	s.Equal("", s.metaValue("u1", models.MetaKeyVerified))
}

func (s *HandlerSuite) TestAdminSave_CoercionsApplied() {
	seed := s.dashboardForm(s.issueNonce(nonce.ScopeDashboardAjax, "u1"), "passport", "42", "")
	seedReq := testutil.NewFormRequest(s.T(), http.MethodPost, "/dashboard/documents/save", seed)
	seedReq.Header.Set("Authorization", "Bearer "+s.sellerToken())
	s.Require().Equal(http.StatusOK, testutil.DoRequest(s.router, seedReq).Code)

	save := map[string]any{
		"nonce":          s.issueNonce(nonce.ScopeAdminSave, "editor-1"),
		"document_type":  "notarized_selfie",
		"document_front": "999",
		"document_back":  "",
		"verified":       false,
	}
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/users/u1/verification", save)
	req.Header.Set("Authorization", "Bearer "+s.editorToken())
	rr := testutil.DoRequest(s.router, req)

	s.Require().Equal(http.StatusOK, rr.Code)
	body := testutil.UnmarshalResponse[panelBody](s.T(), rr)
	s.Equal("", body.Record.DocumentType)
	s.Nil(body.Record.DocumentFront)
	s.Equal("0", s.metaValue("u1", models.MetaKeyDocumentFront))
}

func (s *HandlerSuite) TestBadge_UnknownSubject() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/listings/authors/nobody/badge")
	rr := testutil.DoRequest(s.router, req)

	s.Require().Equal(http.StatusOK, rr.Code)
	body := testutil.UnmarshalResponse[struct {
		Verified bool `json:"verified"`
	}](s.T(), rr)
	s.False(body.Verified)
}
