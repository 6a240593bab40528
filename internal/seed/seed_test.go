package seed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/scoutdesk/internal/adapters/http/api"
	service "github.com/okian/scoutdesk/internal/app"
	"github.com/okian/scoutdesk/internal/domain/board"
	"github.com/okian/scoutdesk/internal/domain/types"
	"github.com/okian/scoutdesk/internal/seed"
	"github.com/okian/scoutdesk/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given a seed configuration", t, func() {
		cfg := seed.Config{Players: 40, Scouts: 4, AssignRatio: 0.6, ReportRatio: 0.5, Seed: 7}

		Convey("When generating twice with the same seed", func() {
			a, b := seed.Generate(cfg), seed.Generate(cfg)

			Convey("Then the plans are identical", func() {
				So(cmp.Diff(a, b), ShouldBeEmpty)
				So(a.Players, ShouldHaveLength, 40)
				So(a.Scouts, ShouldHaveLength, 4)
			})

			Convey("And the expected columns cover every player", func() {
				s, as, c := a.Expected()
				So(s+as+c, ShouldEqual, 40)
				for _, p := range a.Players {
					So(p.Scout, ShouldBeBetweenOrEqual, -1, 3)
					if p.Scout < 0 {
						So(p.Report, ShouldBeFalse)
					}
				}
			})
		})

		Convey("When there are no scouts", func() {
			cfg.Scouts = 0
			plan := seed.Generate(cfg)

			Convey("Then every player stays on the scouting list", func() {
				s, as, c := plan.Expected()
				So(s, ShouldEqual, 40)
				So(as+c, ShouldEqual, 0)
			})
		})
	})
}

func TestVerify(t *testing.T) {
	Convey("Given a plan with one shortlisted and one completed player", t, func() {
		plan := seed.Plan{
			Scouts:  []seed.ScoutPlan{{FirstName: "Ana"}},
			Players: []seed.PlayerPlan{{Name: "A", Scout: -1}, {Name: "B", Scout: 0, Report: true}},
		}
		before := types.NewBoardView(board.Board{}, 1, time.Time{})

		Convey("When the board grew accordingly", func() {
			after := types.NewBoardView(board.Board{
				Shortlisted: []board.Record{{PlayerID: "a", AssignedTo: board.AssignedToNobody}},
				Completed:   []board.Record{{PlayerID: "b", ReportID: "r", Label: board.LabelReportSubmitted}},
			}, 5, time.Time{})

			Convey("Then verification passes", func() {
				So(seed.Verify(plan, before, after), ShouldBeNil)
				So(seed.VerifyScout(plan, 0, types.NewBoardView(board.Board{Completed: after.Completed}, 5, time.Time{})), ShouldBeNil)
			})
		})

		Convey("When a player shows up in two columns", func() {
			after := types.NewBoardView(board.Board{
				Shortlisted: []board.Record{{PlayerID: "a", AssignedTo: board.AssignedToNobody}},
				Completed:   []board.Record{{PlayerID: "a", ReportID: "r", Label: board.LabelReportSubmitted}},
			}, 5, time.Time{})

			Convey("Then verification reports it", func() {
				err := seed.Verify(plan, before, after)
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "both shortlisted and assigned")
			})
		})

		Convey("When the board is missing the completed record", func() {
			after := types.NewBoardView(board.Board{
				Shortlisted: []board.Record{{PlayerID: "a", AssignedTo: board.AssignedToNobody}},
			}, 5, time.Time{})

			Convey("Then verification reports the short column", func() {
				So(seed.Verify(plan, before, after), ShouldNotBeNil)
				So(seed.VerifyScout(plan, 0, after), ShouldNotBeNil)
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a scouting desk served over HTTP", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(2))
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		mux := http.NewServeMux()
		api.NewServer(svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When a run seeds it twice", func() {
			cfg := seed.Config{
				BaseURL:     srv.URL,
				Players:     30,
				Scouts:      3,
				AssignRatio: 0.7,
				ReportRatio: 0.5,
				Workers:     4,
				Timeout:     5 * time.Second,
				Seed:        42,
			}
			first, err := seed.Run(ctx, cfg)
			So(err, ShouldBeNil)
			second, err := seed.Run(ctx, cfg)
			So(err, ShouldBeNil)

			Convey("Then every write landed and the board verified both times", func() {
				_, assigned, completed := seed.Generate(cfg).Expected()
				for _, st := range []*seed.Stats{first, second} {
					So(st.PlayersCreated, ShouldEqual, 30)
					So(st.ScoutsCreated, ShouldEqual, 3)
					So(st.Marked, ShouldEqual, 30)
					So(st.Assigned, ShouldEqual, assigned+completed)
					So(st.Reported, ShouldEqual, completed)
					So(st.RequestsDuplicate, ShouldEqual, 0)
				}
			})
		})

		Convey("When the service is unreachable", func() {
			_, err := seed.Run(ctx, seed.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})

			Convey("Then the health check fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "health check")
			})
		})
	})
}
