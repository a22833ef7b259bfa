package recordapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/vovakirdan/kubb-counter/internal/core"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore is an in-memory core.RecordStore.
type fakeStore struct {
	mu        sync.Mutex
	report    core.BestsReport
	fetchErr  error
	submitErr error
	submitted []core.Summary
	lastQuery struct {
		player   core.Player
		distance core.Distance
		quantity int
	}
}

func (f *fakeStore) FetchBests(_ context.Context, player core.Player, distance core.Distance, quantity int) (core.BestsReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery.player, f.lastQuery.distance, f.lastQuery.quantity = player, distance, quantity
	return f.report, f.fetchErr
}

func (f *fakeStore) SubmitSession(_ context.Context, s core.Summary) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	if err := s.Validate(); err != nil {
		return "", err
	}
	f.submitted = append(f.submitted, s)
	return "rec-1", nil
}

func newTestServer(store core.RecordStore) *Server {
	return NewServer(store, Options{
		RateLimit: 1000,
		RateBurst: 1000,
		Logger:    log.New(&strings.Builder{}),
	})
}

func serve(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

const validSession = `{
	"playerName": "Samuel",
	"distance": "4 Meter",
	"quantity": 4,
	"hits": 3,
	"misses": 1,
	"hitPercentage": 75,
	"longestHitStreak": 2,
	"longestMissStreak": 1,
	"duration": 95,
	"startTime": "2024-05-01T10:00:00.000Z",
	"endTime": "2024-05-01T10:01:35.000Z"
}`

func TestRecordsEndpoint(t *testing.T) {
	Convey("Given a record service", t, func() {
		store := &fakeStore{report: core.BestsReport{
			Bests:      core.Bests{MaxHitStreak: 7, MaxHitPercentage: 82.5, MaxHitsForQuantity: 41},
			TotalGames: 12,
		}}
		srv := newTestServer(store)

		Convey("When all parameters are present", func() {
			w := serve(srv, http.MethodGet, "/api/records?playerName=Samuel&distance=4+Meter&quantity=50", "")

			Convey("Then it returns the bests and the game count", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				records := body["records"].(map[string]any)
				So(records["maxHitStreak"], ShouldEqual, float64(7))
				So(records["maxHitPercentage"], ShouldEqual, 82.5)
				So(records["maxHitsForQuantity"], ShouldEqual, float64(41))
				So(body["totalGames"], ShouldEqual, float64(12))

				So(store.lastQuery.player, ShouldEqual, core.Player("Samuel"))
				So(store.lastQuery.distance, ShouldEqual, core.Distance("4 Meter"))
				So(store.lastQuery.quantity, ShouldEqual, 50)
			})

			Convey("And the response carries a request ID and no-store caching", func() {
				So(w.Header().Get("X-Request-Id"), ShouldNotBeEmpty)
				So(w.Header().Get("Cache-Control"), ShouldContainSubstring, "no-store")
			})
		})

		Convey("When a parameter is missing", func() {
			w := serve(srv, http.MethodGet, "/api/records?playerName=Samuel&quantity=50", "")

			Convey("Then it returns 400 with the parameter list", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "Missing required parameters: playerName, distance, quantity")
			})
		})

		Convey("When quantity is not a number", func() {
			w := serve(srv, http.MethodGet, "/api/records?playerName=Samuel&distance=4+Meter&quantity=lots", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the store fails", func() {
			store.fetchErr = errors.New("disk on fire")
			w := serve(srv, http.MethodGet, "/api/records?playerName=Samuel&distance=4+Meter&quantity=50", "")

			Convey("Then it returns 500 with the detail", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				var body ErrorResponse
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Error, ShouldEqual, "Failed to fetch records")
				So(body.Message, ShouldEqual, "disk on fire")
			})
		})

		Convey("When the method is wrong", func() {
			w := serve(srv, http.MethodPost, "/api/records", "{}")

			Convey("Then it returns 405", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Body.String(), ShouldContainSubstring, "Method not allowed")
			})
		})
	})
}

func TestSessionsEndpoint(t *testing.T) {
	Convey("Given a record service", t, func() {
		store := &fakeStore{}
		srv := newTestServer(store)

		Convey("When a complete session is posted", func() {
			w := serve(srv, http.MethodPost, "/api/sessions", validSession)

			Convey("Then it is stored and its ID returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body SessionResponse
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Success, ShouldBeTrue)
				So(body.ID, ShouldEqual, "rec-1")

				So(store.submitted, ShouldHaveLength, 1)
				got := store.submitted[0]
				So(got.Player, ShouldEqual, core.Player("Samuel"))
				So(got.Hits, ShouldEqual, 3)
				So(got.DurationSeconds, ShouldEqual, 95)
				So(got.EndTime.Sub(got.StartTime).Seconds(), ShouldEqual, 95)
			})
		})

		Convey("When fields are missing", func() {
			w := serve(srv, http.MethodPost, "/api/sessions", `{"playerName":"Samuel","distance":"4 Meter","hits":0}`)

			Convey("Then it lists them in order", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body ErrorResponse
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Error, ShouldEqual, "Missing required fields")
				So(body.MissingFields, ShouldResemble, []string{
					"quantity", "misses", "hitPercentage", "longestHitStreak",
					"longestMissStreak", "duration", "startTime", "endTime",
				})
				So(store.submitted, ShouldBeEmpty)
			})
		})

		Convey("When a field is present but invalid", func() {
			body := strings.Replace(validSession, `"quantity": 4`, `"quantity": 0`, 1)
			w := serve(srv, http.MethodPost, "/api/sessions", body)

			Convey("Then the store's validation is reported as 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "quantity")
			})
		})

		Convey("When the body is not JSON", func() {
			w := serve(srv, http.MethodPost, "/api/sessions", "not json")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the store fails", func() {
			store.submitErr = core.ErrUnavailable
			w := serve(srv, http.MethodPost, "/api/sessions", validSession)

			Convey("Then it returns 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "Failed to create record")
			})
		})

		Convey("When the method is wrong", func() {
			w := serve(srv, http.MethodGet, "/api/sessions", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given a record service that served a request", t, func() {
		srv := newTestServer(&fakeStore{})
		serve(srv, http.MethodGet, "/api/records?playerName=Samuel&distance=4+Meter&quantity=50", "")

		Convey("Then /healthz reports ok", func() {
			w := serve(srv, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("Then /metrics exposes the request counters", func() {
			w := serve(srv, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "kubb_records_http_requests_total")
			So(w.Body.String(), ShouldContainSubstring, "kubb_records_bests_served_total 1")
		})

		Convey("Then the server's registry counted the query", func() {
			families, err := srv.Metrics().Registry().Gather()
			So(err, ShouldBeNil)
			var served float64
			for _, mf := range families {
				if mf.GetName() == "kubb_records_bests_served_total" {
					served = mf.GetMetric()[0].GetCounter().GetValue()
				}
			}
			So(served, ShouldEqual, float64(1))
		})

		Convey("Then unknown routes return 404", func() {
			w := serve(srv, http.MethodGet, "/nope", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRateLimit(t *testing.T) {
	Convey("Given a service allowing a burst of two requests", t, func() {
		srv := NewServer(&fakeStore{}, Options{RateLimit: 0.001, RateBurst: 2, Logger: log.New(&strings.Builder{})})
		target := "/api/records?playerName=Samuel&distance=4+Meter&quantity=50"

		Convey("Then the third request from the same client is rejected", func() {
			So(serve(srv, http.MethodGet, target, "").Code, ShouldEqual, http.StatusOK)
			So(serve(srv, http.MethodGet, target, "").Code, ShouldEqual, http.StatusOK)
			w := serve(srv, http.MethodGet, target, "")
			So(w.Code, ShouldEqual, http.StatusTooManyRequests)
		})

		Convey("Then health checks are not limited", func() {
			for i := 0; i < 5; i++ {
				So(serve(srv, http.MethodGet, "/healthz", "").Code, ShouldEqual, http.StatusOK)
			}
		})
	})
}
