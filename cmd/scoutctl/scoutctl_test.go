package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/scoutdesk/internal/adapters/http/api"
	service "github.com/okian/scoutdesk/internal/app"
	"github.com/okian/scoutdesk/internal/domain/types"
	"github.com/okian/scoutdesk/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestScoutctl(t *testing.T) {
	convey.Convey("Given a scouting desk served over HTTP", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(1))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()
		mux := http.NewServeMux()
		api.NewServer(svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		convey.Convey("When it is seeded", func() {
			out, err := execute("seed", "--url", srv.URL, "--players", "12", "--scouts", "2", "--workers", "2", "--seed", "3")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "players 12")

			convey.Convey("Then the board renders every column", func() {
				out, err := execute("board", "--url", srv.URL)
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Shortlisted (")
				convey.So(out, convey.ShouldContainSubstring, "Assigned (")
				convey.So(out, convey.ShouldContainSubstring, "Completed (")
			})

			convey.Convey("And the JSON board decodes", func() {
				out, err := execute("board", "--url", srv.URL, "--json")
				convey.So(err, convey.ShouldBeNil)
				var view types.BoardView
				convey.So(json.Unmarshal([]byte(out), &view), convey.ShouldBeNil)
				total := len(view.Shortlisted) + len(view.Assigned) + len(view.Completed)
				convey.So(total, convey.ShouldEqual, 12)
			})

			convey.Convey("And performance lists the scouts that have work", func() {
				out, err := execute("performance", "--url", srv.URL)
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Scouts (")
				convey.So(out, convey.ShouldContainSubstring, "Avg Hours")
			})
		})

		convey.Convey("When a board search is too long", func() {
			long := make([]byte, 200)
			for i := range long {
				long[i] = 'x'
			}
			_, err := execute("board", "--url", srv.URL, "-q", string(long))

			convey.Convey("Then the command fails with the API error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "400")
			})
		})
	})
}
