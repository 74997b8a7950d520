package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogo_UploadShowsInLayout(t *testing.T) {
	env := newTestEnv(t, t.TempDir())
	cookie := env.login(t)

	req := multipartRequest(t, "/admin/logo", "logo", map[string]string{"brand.png": "png"}, []string{"brand.png"})
	req.AddCookie(cookie)
	resp, _ := env.do(t, req)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/logo?saved=1", resp.Header.Get(fiber.HeaderLocation))

	require.NotNil(t, env.settings.setting)
	logo := *env.settings.setting.LogoURL
	assert.True(t, strings.HasPrefix(logo, "https://cdn.test/site-assets/logo-"))

	_, body := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, body, logo)
}

func TestLogo_RejectsWrongType(t *testing.T) {
	env := newTestEnv(t, t.TempDir())
	cookie := env.login(t)

	req := multipartRequest(t, "/admin/logo", "logo", map[string]string{"brand.bmp": "bmp"}, []string{"brand.bmp"})
	req.AddCookie(cookie)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, body := env.do(t, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Logo must be a PNG, JPG or SVG file"}`, body)
	assert.Nil(t, env.settings.setting)
}

func TestContent_SaveAndShow(t *testing.T) {
	env := newTestEnv(t, t.TempDir())
	cookie := env.login(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/content", nil)
	req.AddCookie(cookie)
	_, body := env.do(t, req)
	assert.Contains(t, body, "Our natural stone collection", "static text until one is saved")

	req = formRequest("/admin/content", url.Values{"description": {"Granite from Rajasthan."}})
	req.AddCookie(cookie)
	resp, _ := env.do(t, req)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, testEmail, env.content.block.UserID)

	resp, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/natural-stones/content", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"description":"Granite from Rajasthan."}`, body)
}

func TestBrochure_Download(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quartz.pdf"), []byte("%PDF-1.4 quartz"), 0o644))
	env := newTestEnv(t, dir)

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/brochures/quartz", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "Quartz")
	assert.Equal(t, "%PDF-1.4 quartz", body)

	resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/brochures/tiles", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestBrochure_EmailDisabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quartz.pdf"), []byte("%PDF"), 0o644))
	env := newTestEnv(t, dir)

	req := formRequest("/brochures/quartz/email", url.Values{"email": {"buyer@example.com"}})
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, body := env.do(t, req)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Brochure mail is not available"}`, body)

	req = formRequest("/brochures/quartz/email", url.Values{"email": {"buyer@example.com"}})
	resp, _ = env.do(t, req)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/quartz?brochure=error", resp.Header.Get(fiber.HeaderLocation))
}
