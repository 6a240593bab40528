package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/scoutdesk/internal/adapters/repository"
	"github.com/okian/scoutdesk/internal/domain/model"
)

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

type factory struct {
	name string
	open func(t *testing.T) repository.Store
}

func factories() []factory {
	return []factory{
		{"memory", func(*testing.T) repository.Store { return repository.NewMemoryStore() }},
		{"sqlite", func(t *testing.T) repository.Store {
			s, err := repository.NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "desk.db"))
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			return s
		}},
	}
}

func TestStoreContract(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			Convey("Given an empty "+f.name+" store", t, func() {
				ctx := context.Background()
				s := f.open(t)
				Reset(func() { _ = s.Close() })

				Convey("When players are created", func() {
					p1 := model.Player{ID: "p1", Name: "Kofi Mensah", Club: "Hamburger SV",
						Positions: []string{"ST", "RW"}, Age: ptr(19), Rating: ptr(71.5), CreatedAt: base}
					p2 := model.Player{ID: "p2", Name: "Luis Ortega", Club: "Real Betis",
						Positions: []string{}, CreatedAt: base.Add(time.Minute)}
					So(s.CreatePlayer(ctx, p1), ShouldBeNil)
					So(s.CreatePlayer(ctx, p2), ShouldBeNil)

					Convey("Then they round-trip", func() {
						got, err := s.GetPlayer(ctx, "p1")
						So(err, ShouldBeNil)
						So(cmp.Diff(p1, got), ShouldBeEmpty)
					})

					Convey("And listing is ordered by creation", func() {
						all, err := s.ListPlayers(ctx, repository.PlayerQuery{})
						So(err, ShouldBeNil)
						So(all, ShouldHaveLength, 2)
						So(all[0].ID, ShouldEqual, "p1")
						So(all[1].ID, ShouldEqual, "p2")
					})

					Convey("And search matches club case-insensitively", func() {
						found, err := s.ListPlayers(ctx, repository.PlayerQuery{Search: " betis "})
						So(err, ShouldBeNil)
						So(found, ShouldHaveLength, 1)
						So(found[0].ID, ShouldEqual, "p2")
					})

					Convey("And a duplicate id conflicts", func() {
						err := s.CreatePlayer(ctx, p1)
						So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
					})
				})

				Convey("When a player is missing", func() {
					_, err := s.GetPlayer(ctx, "nope")

					Convey("Then ErrNotFound is returned", func() {
						So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
					})
				})

				Convey("When scouts are created", func() {
					sc := model.Scout{ID: "s1", FirstName: "Ana", LastName: "Costa", Email: "ana@club.test",
						Role: model.RoleScout, CreatedAt: base}
					So(s.CreateScout(ctx, sc), ShouldBeNil)

					Convey("Then they can be fetched and listed", func() {
						got, err := s.GetScout(ctx, "s1")
						So(err, ShouldBeNil)
						So(cmp.Diff(sc, got), ShouldBeEmpty)
						all, err := s.ListScouts(ctx)
						So(err, ShouldBeNil)
						So(all, ShouldHaveLength, 1)
					})
				})

				Convey("When an assignment is created", func() {
					deadline := base.Add(72 * time.Hour)
					a := model.Assignment{ID: "a1", PlayerID: "p1", ScoutID: "s1", AssignedByID: "m1",
						Priority: model.PriorityHigh, Status: model.AssignmentAssigned,
						Deadline: &deadline, Notes: "watch the derby", CreatedAt: base, UpdatedAt: base}
					So(s.CreateAssignment(ctx, a), ShouldBeNil)

					Convey("Then it round-trips", func() {
						got, err := s.GetAssignment(ctx, "a1")
						So(err, ShouldBeNil)
						So(cmp.Diff(a, got), ShouldBeEmpty)
					})

					Convey("And the same pair conflicts even with a new id", func() {
						dup := a
						dup.ID = "a2"
						err := s.CreateAssignment(ctx, dup)
						So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
					})

					Convey("And filters select by scout and player", func() {
						So(s.CreateAssignment(ctx, model.Assignment{ID: "a3", PlayerID: "p2", ScoutID: "s2",
							Status: model.AssignmentAssigned, CreatedAt: base.Add(time.Second), UpdatedAt: base}), ShouldBeNil)

						byScout, err := s.ListAssignments(ctx, repository.AssignmentQuery{ScoutID: "s2"})
						So(err, ShouldBeNil)
						So(byScout, ShouldHaveLength, 1)
						So(byScout[0].ID, ShouldEqual, "a3")

						byPlayer, err := s.ListAssignments(ctx, repository.AssignmentQuery{PlayerID: "p1"})
						So(err, ShouldBeNil)
						So(byPlayer, ShouldHaveLength, 1)

						all, err := s.ListAssignments(ctx, repository.AssignmentQuery{})
						So(err, ShouldBeNil)
						So(all, ShouldHaveLength, 2)
					})

					Convey("And updates change only the given fields", func() {
						later := base.Add(time.Hour)
						got, err := s.UpdateAssignment(ctx, "a1", repository.AssignmentUpdate{
							Status:        ptr(model.AssignmentInProgress),
							ClearDeadline: true,
							UpdatedAt:     later,
						})
						So(err, ShouldBeNil)
						So(got.Status, ShouldEqual, model.AssignmentInProgress)
						So(got.Deadline, ShouldBeNil)
						So(got.Notes, ShouldEqual, "watch the derby")
						So(got.Priority, ShouldEqual, model.PriorityHigh)
						So(got.UpdatedAt.Equal(later), ShouldBeTrue)

						stored, err := s.GetAssignment(ctx, "a1")
						So(err, ShouldBeNil)
						So(cmp.Diff(got, stored), ShouldBeEmpty)
					})

					Convey("And deleting frees the pair", func() {
						So(s.DeleteAssignment(ctx, "a1"), ShouldBeNil)
						So(errors.Is(s.DeleteAssignment(ctx, "a1"), repository.ErrNotFound), ShouldBeTrue)
						again := a
						again.ID = "a9"
						So(s.CreateAssignment(ctx, again), ShouldBeNil)
					})
				})

				Convey("When updating an unknown assignment", func() {
					_, err := s.UpdateAssignment(ctx, "ghost", repository.AssignmentUpdate{Notes: ptr("x")})

					Convey("Then ErrNotFound is returned", func() {
						So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
					})
				})

				Convey("When reports are filed", func() {
					r1 := model.Report{ID: "r1", PlayerID: "p1", ScoutID: "s1", Status: model.ReportSubmitted,
						Summary: "quick", PerformanceRating: ptr(8), CreatedAt: base, UpdatedAt: base}
					r2 := model.Report{ID: "r2", PlayerID: "p2", ScoutID: "s1", Status: model.ReportDraft,
						CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)}
					So(s.CreateReport(ctx, r1), ShouldBeNil)
					So(s.CreateReport(ctx, r2), ShouldBeNil)

					Convey("Then they can be filtered", func() {
						all, err := s.ListReports(ctx, repository.ReportQuery{ScoutID: "s1"})
						So(err, ShouldBeNil)
						So(all, ShouldHaveLength, 2)
						So(cmp.Diff(r1, all[0]), ShouldBeEmpty)

						one, err := s.ListReports(ctx, repository.ReportQuery{PlayerID: "p2"})
						So(err, ShouldBeNil)
						So(one, ShouldHaveLength, 1)
						So(one[0].ID, ShouldEqual, "r2")
					})
				})

				Convey("When the scouting list is ensured twice", func() {
					first, err := s.EnsureScoutingList(ctx, model.Shortlist{ID: "sl1", Name: model.ScoutingListName, CreatedAt: base})
					So(err, ShouldBeNil)
					second, err := s.EnsureScoutingList(ctx, model.Shortlist{ID: "sl2", Name: "other", CreatedAt: base})
					So(err, ShouldBeNil)

					Convey("Then the first list is reused", func() {
						So(first.ID, ShouldEqual, "sl1")
						So(second.ID, ShouldEqual, "sl1")
						So(second.IsScoutingAssignmentList, ShouldBeTrue)
						lists, err := s.ListShortlists(ctx)
						So(err, ShouldBeNil)
						So(lists, ShouldHaveLength, 1)
					})

					Convey("And a second flagged list cannot be created", func() {
						err := s.CreateShortlist(ctx, model.Shortlist{ID: "sl3", Name: "x", IsScoutingAssignmentList: true, CreatedAt: base})
						So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
					})

					Convey("And entries can be added once and removed once", func() {
						e := model.ShortlistEntry{ShortlistID: "sl1", PlayerID: "p1", AddedAt: base}
						So(s.AddToShortlist(ctx, e), ShouldBeNil)
						So(errors.Is(s.AddToShortlist(ctx, e), repository.ErrConflict), ShouldBeTrue)
						So(s.AddToShortlist(ctx, model.ShortlistEntry{ShortlistID: "sl1", PlayerID: "p2", AddedAt: base.Add(time.Second)}), ShouldBeNil)

						entries, err := s.ListShortlistEntries(ctx, "sl1")
						So(err, ShouldBeNil)
						So(entries, ShouldHaveLength, 2)
						So(entries[0].PlayerID, ShouldEqual, "p1")

						So(s.RemoveFromShortlist(ctx, "sl1", "p1"), ShouldBeNil)
						So(errors.Is(s.RemoveFromShortlist(ctx, "sl1", "p1"), repository.ErrNotFound), ShouldBeTrue)
					})
				})

				Convey("When touching entries of an unknown shortlist", func() {
					addErr := s.AddToShortlist(ctx, model.ShortlistEntry{ShortlistID: "ghost", PlayerID: "p1", AddedAt: base})
					_, listErr := s.ListShortlistEntries(ctx, "ghost")
					_, getErr := s.GetShortlist(ctx, "ghost")

					Convey("Then ErrNotFound is returned", func() {
						So(errors.Is(addErr, repository.ErrNotFound), ShouldBeTrue)
						So(errors.Is(listErr, repository.ErrNotFound), ShouldBeTrue)
						So(errors.Is(getErr, repository.ErrNotFound), ShouldBeTrue)
					})
				})
			})
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	Convey("Given a player stored in memory", t, func() {
		ctx := context.Background()
		s := repository.NewMemoryStore()
		p := model.Player{ID: "p1", Name: "A", Positions: []string{"CM"}, Age: ptr(20), CreatedAt: base}
		So(s.CreatePlayer(ctx, p), ShouldBeNil)

		Convey("When the caller mutates its values", func() {
			p.Positions[0] = "GK"
			*p.Age = 40
			got, err := s.GetPlayer(ctx, "p1")
			So(err, ShouldBeNil)

			Convey("Then the stored copy is unchanged", func() {
				So(got.Positions, ShouldResemble, []string{"CM"})
				So(*got.Age, ShouldEqual, 20)
			})
		})

		Convey("When the store is closed", func() {
			So(s.Close(), ShouldBeNil)
			_, err := s.GetPlayer(ctx, "p1")

			Convey("Then calls fail with ErrClosed", func() {
				So(errors.Is(err, repository.ErrClosed), ShouldBeTrue)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := s.ListPlayers(cctx, repository.PlayerQuery{})

			Convey("Then the call returns the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Given the store factory", t, func() {
		ctx := context.Background()

		Convey("When opening each driver", func() {
			mem, err := repository.Open(ctx, repository.DriverMemory, "")
			So(err, ShouldBeNil)
			defer func() { _ = mem.Close() }()
			lite, err := repository.Open(ctx, repository.DriverSQLite, filepath.Join(t.TempDir(), "x.db"),
				repository.WithMaxOpenConns(1))
			So(err, ShouldBeNil)
			defer func() { _ = lite.Close() }()

			Convey("Then both serve the same contract through the instrumented wrapper", func() {
				for _, s := range []repository.Store{mem, lite} {
					So(s.CreateScout(ctx, model.Scout{ID: "s1", CreatedAt: base}), ShouldBeNil)
					all, err := s.ListScouts(ctx)
					So(err, ShouldBeNil)
					So(all, ShouldHaveLength, 1)
				}
			})
		})

		Convey("When instrumentation is disabled", func() {
			s, err := repository.Open(ctx, repository.DriverMemory, "", repository.WithInstrumentation(false))
			So(err, ShouldBeNil)
			defer func() { _ = s.Close() }()

			Convey("Then the bare store is returned", func() {
				_, ok := s.(*repository.MemoryStore)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the driver is unknown", func() {
			_, err := repository.Open(ctx, "mongo", "")

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
