package http

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestIndex_StartsSessionAndRedirects(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodGet, "/", nil, "")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc := rec.Header().Get(echo.HeaderLocation)
	if !strings.HasPrefix(loc, "/s/") || len(loc) != len("/s/")+32 {
		t.Fatalf("location = %q", loc)
	}

	page := app.do(t, http.MethodGet, loc, nil, "")
	if page.Code != http.StatusOK {
		t.Fatalf("page status = %d", page.Code)
	}
	body := page.Body.String()
	for _, want := range []string{
		"Non-Refundable PF Loan Withdrawal",
		"Date: 05 March 2025",
		"[Employee Name]",
		"Download PDF",
		`<option value="House Construction" selected>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, `name="custom_reason"`) {
		t.Error("custom reason input shown without Other selected")
	}
}

func TestUpdate_FormPostRendersPreview(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.newSession(t)

	form := url.Values{
		"employee_name": {"Riya <b>Sen</b>"},
		"loan_amount":   {"150000"},
		"loan_reason":   {"Other"},
		"custom_reason": {""},
	}
	rec := app.do(t, http.MethodPost, "/s/"+sid, strings.NewReader(form.Encode()), echo.MIMEApplicationForm)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/s/"+sid {
		t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	body := app.do(t, http.MethodGet, "/s/"+sid, nil, "").Body.String()
	for _, want := range []string{
		"₹1,50,000",
		"Personal Reasons",
		"Riya &lt;b&gt;Sen&lt;/b&gt;",
		`name="custom_reason"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "<b>Sen</b>") {
		t.Error("employee name rendered unescaped")
	}
}

func TestUpdate_UnknownField(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.newSession(t)

	rec := app.do(t, http.MethodPost, "/s/"+sid, strings.NewReader("salary=100"), echo.MIMEApplicationForm)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestShow_ExpiredSessionStartsOver(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodGet, "/s/"+strings.Repeat("f", 32), nil, "")
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestPageExport_Downloads(t *testing.T) {
	app := newTestApp(t, nil)
	sid := app.newSession(t)

	rec := app.do(t, http.MethodPost, "/s/"+sid+"/export", nil, "")
	if rec.Code != http.StatusOK || rec.Header().Get(echo.HeaderContentType) != "application/pdf" {
		t.Fatalf("status = %d type = %q", rec.Code, rec.Header().Get(echo.HeaderContentType))
	}
}
