package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/naveenspark/islendingabok/pkg/client"
)

// fakeService answers login and a few endpoints the way the real service does.
func fakeService(t *testing.T, requests *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := strings.TrimPrefix(r.URL.Path, "/ib_app/")
		*requests = append(*requests, endpoint)
		q := r.URL.Query()
		switch endpoint {
		case "login":
			if q.Get("user") != "user" || q.Get("pwd") != "secret" {
				fmt.Fprint(w, "Rangt notandanafn eða lykilorð") //nolint:errcheck
				return
			}
			fmt.Fprint(w, "abc123,456") //nolint:errcheck
		case "get":
			fmt.Fprintf(w, `{"id": %q, "name": "Ég Sjálfur", "dob": "15.07.1973"}`, q.Get("id")) //nolint:errcheck
		case "find":
			fmt.Fprint(w, `[{"id": "100", "name": "Vigdís Finnbogadóttir", "dob": "15.04.1930"}]`) //nolint:errcheck
		case "siblings":
			fmt.Fprintf(w, `[{"id": "%s1", "name": "Systir"}]`, q.Get("id")) //nolint:errcheck
		case "whois":
			fmt.Fprint(w, "Jón Jónsson") //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, srvURL string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(client.EnvUser, "")
	t.Setenv(client.EnvPassword, "")
	base := []string{
		"--api-url", srvURL + "/ib_app/",
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--username", "user",
		"--password", "secret",
	}
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(base, args...))
	err := root.Execute()
	return out.String(), err
}

func TestMeCommand(t *testing.T) {
	var requests []string
	srv := fakeService(t, &requests)

	out, err := execute(t, srv.URL, "me")
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if !strings.Contains(out, "Ég Sjálfur") || !strings.Contains(out, "456") {
		t.Errorf("output = %q, want own record", out)
	}
	if strings.Join(requests, ",") != "login,get" {
		t.Errorf("requests = %v, want login then get", requests)
	}
}

func TestFindCommandJSON(t *testing.T) {
	var requests []string
	srv := fakeService(t, &requests)

	out, err := execute(t, srv.URL, "-o", "json", "find", "Vigdís", "Finnbogadóttir")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0]["name"] != "Vigdís Finnbogadóttir" {
		t.Errorf("got %v", got)
	}
}

func TestFindCommandIncompleteDate(t *testing.T) {
	var requests []string
	srv := fakeService(t, &requests)

	_, err := execute(t, srv.URL, "find", "--year", "1973", "--month", "7")
	if !errors.Is(err, client.ErrIncompleteDOB) {
		t.Fatalf("error = %v, want ErrIncompleteDOB", err)
	}
	for _, r := range requests {
		if r == "find" {
			t.Error("find endpoint should not be called")
		}
	}
}

func TestRelationCommands(t *testing.T) {
	var requests []string
	srv := fakeService(t, &requests)

	out, err := execute(t, srv.URL, "siblings", "100")
	if err != nil {
		t.Fatalf("siblings: %v", err)
	}
	if !strings.Contains(out, "1001") {
		t.Errorf("output = %q, want sibling id", out)
	}

	out, err = execute(t, srv.URL, "relation", "siblings")
	if err != nil {
		t.Fatalf("relation siblings: %v", err)
	}
	if !strings.Contains(out, "4561") {
		t.Errorf("output = %q, want sibling of own id", out)
	}
}

func TestRelationCommandUnknown(t *testing.T) {
	var requests []string
	srv := fakeService(t, &requests)

	_, err := execute(t, srv.URL, "relation", "cousins")
	if !errors.Is(err, client.ErrUnknownRelation) {
		t.Fatalf("error = %v, want ErrUnknownRelation", err)
	}
	if len(requests) != 0 {
		t.Errorf("requests = %v, want none", requests)
	}
}

func TestWhoisCommand(t *testing.T) {
	var requests []string
	srv := fakeService(t, &requests)

	out, err := execute(t, srv.URL, "whois", "sess123")
	if err != nil {
		t.Fatalf("whois: %v", err)
	}
	if out != "Jón Jónsson" {
		t.Errorf("output = %q, want raw whois text", out)
	}
}

func TestBadLogin(t *testing.T) {
	var requests []string
	srv := fakeService(t, &requests)

	_, err := execute(t, srv.URL, "--password", "wrong", "me")
	if !client.IsAPIError(err) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if !strings.Contains(err.Error(), "Rangt notandanafn") {
		t.Errorf("error = %q, want server message", err.Error())
	}
}

func TestDemoCommand(t *testing.T) {
	var requests []string
	srv := fakeService(t, &requests)

	out, err := execute(t, srv.URL, "demo")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	for _, want := range []string{"Ég Sjálfur", "Vigdís Finnbogadóttir", "Systir"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Join(requests, ",") != "login,get,find,siblings" {
		t.Errorf("requests = %v", requests)
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	var requests []string
	srv := fakeService(t, &requests)

	_, err := execute(t, srv.URL, "-o", "yaml", "me")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("error = %v, want output format error", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "http://127.0.0.1:0", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "islbok dev" {
		t.Errorf("output = %q", out)
	}
}
