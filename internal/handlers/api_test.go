package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkhin/bucketlist/internal/testutil"
)

func Test_APIHandlers(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Register a user and login, return the bearer header value
	authorize := func(t *testing.T, srvURL string, email string) string {
		t.Helper()

		body := fmt.Sprintf(`{"name": "Someone", "email": %q, "password": "secret123"}`, email)
		resp, err := http.Post(srvURL+"/users", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close() // nolint:errcheck
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body = fmt.Sprintf(`{"email": %q, "password": "secret123"}`, email)
		resp, err = http.Post(srvURL+"/login", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		loginBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		defer resp.Body.Close() // nolint:errcheck
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var data struct {
			AccessToken string `json:"accessToken"`
		}
		require.NoError(t, json.Unmarshal(loginBody, &data))
		return "Bearer " + data.AccessToken
	}

	do := func(t *testing.T, method, url, bearer, body string) (*http.Response, string) {
		t.Helper()

		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req, err := http.NewRequest(method, url, reader)
		require.NoError(t, err)
		if bearer != "" {
			req.Header.Set("Authorization", bearer)
		}

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		respBody, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close() // nolint:errcheck

		return resp, string(respBody)
	}

	t.Run("hello world", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			now := time.Now()
			srv, _ := newTestServer(t, tx, &now)

			resp, body := do(t, http.MethodGet, srv.URL+"/", "", "")

			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.JSONEq(t, `{"test": "hello,world"}`, body)
		})
	})

	t.Run("list users requires auth", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			now := time.Now()
			srv, _ := newTestServer(t, tx, &now)

			resp, body := do(t, http.MethodGet, srv.URL+"/users", "", "")

			require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `{"ok": false, "error": "Unauthorized"}`, body)
		})
	})

	t.Run("list users ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			now := time.Now()
			srv, _ := newTestServer(t, tx, &now)
			bearer := authorize(t, srv.URL, "alice@example.com")

			resp, body := do(t, http.MethodGet, srv.URL+"/users", bearer, "")

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)

			var users []map[string]any
			require.NoError(t, json.Unmarshal([]byte(body), &users))
			require.Len(t, users, 1)
			assert.Equal(t, "alice@example.com", users[0]["email"])
			assert.Equal(t, "Someone", users[0]["name"])
			assert.NotContains(t, users[0], "password", "password digest must never leak")
		})
	})

	t.Run("bucket list items", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			now := time.Now()
			srv, _ := newTestServer(t, tx, &now)
			aliceBearer := authorize(t, srv.URL, "alice@example.com")
			bobBearer := authorize(t, srv.URL, "bob@example.com")

			// Alice creates an item
			resp, body := do(t, http.MethodPost, srv.URL+"/bucketlistitems", aliceBearer,
				`{"title": "see the northern lights"}`)
			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)

			var created struct {
				ID     string `json:"id"`
				Title  string `json:"title"`
				Author struct {
					Email string `json:"email"`
				} `json:"author"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &created))
			assert.Equal(t, "see the northern lights", created.Title)
			assert.Equal(t, "alice@example.com", created.Author.Email, "item should belong to its creator")

			t.Run("listing is scoped to the user", func(t *testing.T) {
				resp, body := do(t, http.MethodGet, srv.URL+"/bucketlistitems", aliceBearer, "")
				require.Equal(t, http.StatusOK, resp.StatusCode)
				var items []any
				require.NoError(t, json.Unmarshal([]byte(body), &items))
				require.Len(t, items, 1)

				resp, body = do(t, http.MethodGet, srv.URL+"/bucketlistitems", bobBearer, "")
				require.Equal(t, http.StatusOK, resp.StatusCode)
				require.NoError(t, json.Unmarshal([]byte(body), &items))
				require.Len(t, items, 0, "bob should not see alice's items")
			})

			t.Run("foreign item reads as not found", func(t *testing.T) {
				resp, _ := do(t, http.MethodGet, srv.URL+"/bucketlistitems/"+created.ID, aliceBearer, "")
				require.Equal(t, http.StatusOK, resp.StatusCode)

				resp, body := do(t, http.MethodGet, srv.URL+"/bucketlistitems/"+created.ID, bobBearer, "")
				require.Equal(t, http.StatusNotFound, resp.StatusCode)
				require.JSONEq(t, `{"ok": false, "error": "Bucket list item not found"}`, body)
			})

			t.Run("location attach and fetch", func(t *testing.T) {
				locationBody := fmt.Sprintf(
					`{"country": "Norway", "state": "Troms", "city": "Tromso", "bucketListItemId": %q}`,
					created.ID,
				)
				resp, body := do(t, http.MethodPost, srv.URL+"/locations", "", locationBody)
				require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)

				resp, body = do(t, http.MethodGet, srv.URL+"/bucketlistitems/"+created.ID, aliceBearer, "")
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var withLocation struct {
					Location *struct {
						City string `json:"city"`
					} `json:"location"`
				}
				require.NoError(t, json.Unmarshal([]byte(body), &withLocation))
				require.NotNil(t, withLocation.Location, "item should include its location")
				assert.Equal(t, "Tromso", withLocation.Location.City)
			})
		})
	})

	t.Run("locations", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			now := time.Now()
			srv, _ := newTestServer(t, tx, &now)

			t.Run("empty list", func(t *testing.T) {
				resp, body := do(t, http.MethodGet, srv.URL+"/locations", "", "")
				require.Equal(t, http.StatusOK, resp.StatusCode)
				require.JSONEq(t, `[]`, body)
			})

			t.Run("create for missing item", func(t *testing.T) {
				resp, body := do(t, http.MethodPost, srv.URL+"/locations", "",
					`{"country": "Norway", "state": "Troms", "city": "Tromso", "bucketListItemId": "00000000-0000-0000-0000-000000000001"}`)
				require.Equal(t, http.StatusNotFound, resp.StatusCode)
				require.JSONEq(t, `{"ok": false, "error": "Bucket list item not found"}`, body)
			})

			t.Run("get unknown location", func(t *testing.T) {
				resp, body := do(t, http.MethodGet, srv.URL+"/locations/00000000-0000-0000-0000-000000000001", "", "")
				require.Equal(t, http.StatusNotFound, resp.StatusCode)
				require.JSONEq(t, `{"ok": false, "error": "Location not found"}`, body)
			})
		})
	})
}
