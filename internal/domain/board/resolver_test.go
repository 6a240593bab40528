package board_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/scoutdesk/internal/domain/board"
	"github.com/okian/scoutdesk/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func players() []model.Player {
	return []model.Player{
		{ID: "10", Name: "Lamine Ortega", Club: "Real Betis", Positions: []string{"RW", "ST"}},
		{ID: "42", Name: "Jonas Wirtz", Club: "Hamburger SV", Positions: []string{"CM"}},
		{ID: "7", Name: "Kai Mensah", Club: "Brentford", Positions: []string{"LB"}},
	}
}

func scouts() []model.Scout {
	return []model.Scout{
		{ID: "s1", FirstName: "Ana", LastName: "Costa", Email: "ana@club.test"},
		{ID: "s2", Email: "noname@club.test"},
	}
}

func findRecord(rs []board.Record, playerID string) (board.Record, bool) {
	for _, r := range rs {
		if r.PlayerID == playerID {
			return r, true
		}
	}
	return board.Record{}, false
}

func TestResolveScenarios(t *testing.T) {
	Convey("Given player 10 assigned to s1 and also on the scouting list", t, func() {
		in := board.Input{
			Players: players(),
			Scouts:  scouts(),
			Assignments: []model.Assignment{
				{ID: "a1", PlayerID: "10", ScoutID: "s1", Status: model.AssignmentInProgress, CreatedAt: t0},
			},
			ScoutingList: []model.ShortlistEntry{{PlayerID: "10", AddedAt: t0.Add(-time.Hour)}},
		}

		Convey("When there is no report", func() {
			b := board.Resolve(board.NewSnapshot(in), board.Filter{})

			Convey("Then player 10 is not shortlisted", func() {
				_, found := findRecord(b.Shortlisted, "10")
				So(found, ShouldBeFalse)
			})

			Convey("And the assigned bucket holds one in-progress record", func() {
				So(b.Assigned, ShouldHaveLength, 1)
				So(b.Assigned[0].PlayerID, ShouldEqual, "10")
				So(b.Assigned[0].Status, ShouldEqual, board.StatusInProgress)
				So(b.Assigned[0].Label, ShouldEqual, "In Progress")
				So(b.Completed, ShouldBeEmpty)
			})
		})

		Convey("When s1 has submitted a report on player 10", func() {
			in.Reports = []model.Report{
				{ID: "r1", PlayerID: "10", ScoutID: "s1", Status: model.ReportSubmitted, CreatedAt: t0.Add(48 * time.Hour)},
			}
			b := board.Resolve(board.NewSnapshot(in), board.Filter{})

			Convey("Then the record moves to completed with the report label", func() {
				So(b.Assigned, ShouldBeEmpty)
				So(b.Completed, ShouldHaveLength, 1)
				rec := b.Completed[0]
				So(rec.Status, ShouldEqual, board.StatusCompleted)
				So(rec.Label, ShouldEqual, board.LabelReportSubmitted)
				So(rec.StoredStatus, ShouldEqual, model.AssignmentInProgress)
				So(rec.ReportID, ShouldEqual, "r1")
			})
		})
	})

	Convey("Given no assignments and player 42 on the scouting list", t, func() {
		in := board.Input{
			Players:      players(),
			Scouts:       scouts(),
			ScoutingList: []model.ShortlistEntry{{PlayerID: "42", AddedAt: t0}},
		}

		Convey("When resolving", func() {
			b := board.Resolve(board.NewSnapshot(in), board.Filter{})

			Convey("Then exactly one synthetic record is shortlisted", func() {
				So(b.Shortlisted, ShouldHaveLength, 1)
				rec := b.Shortlisted[0]
				So(rec.PlayerID, ShouldEqual, "42")
				So(rec.Status, ShouldEqual, board.StatusMarkedForScouting)
				So(rec.AssignedTo, ShouldEqual, "Unassigned")
				So(rec.AssignmentID, ShouldBeEmpty)
				So(b.Assigned, ShouldBeEmpty)
				So(b.Completed, ShouldBeEmpty)
			})
		})
	})
}

func TestResolveProperties(t *testing.T) {
	Convey("Given a mixed set of assignments", t, func() {
		in := board.Input{
			Players: players(),
			Scouts:  scouts(),
			Assignments: []model.Assignment{
				{ID: "a1", PlayerID: "10", ScoutID: "s1", Status: model.AssignmentAssigned, CreatedAt: t0},
				{ID: "a2", PlayerID: "10", ScoutID: "s2", Status: model.AssignmentAssigned, CreatedAt: t0.Add(time.Minute)},
				{ID: "a3", PlayerID: "7", ScoutID: "s1", Status: model.AssignmentReviewed, CreatedAt: t0.Add(2 * time.Minute)},
				{ID: "a4", PlayerID: "missing", ScoutID: "s1", Status: model.AssignmentAssigned, CreatedAt: t0},
				{ID: "a5", PlayerID: "42", ScoutID: "ghost", Status: model.AssignmentAssigned, CreatedAt: t0},
			},
			Reports: []model.Report{
				{ID: "r1", PlayerID: "10", ScoutID: "s1", Status: model.ReportSubmitted, CreatedAt: t0.Add(time.Hour)},
				// Same player, different scout: must not complete a2.
				{ID: "r2", PlayerID: "7", ScoutID: "s2", Status: model.ReportSubmitted, CreatedAt: t0.Add(time.Hour)},
			},
			ScoutingList: []model.ShortlistEntry{
				{PlayerID: "10", AddedAt: t0},
				{PlayerID: "42", AddedAt: t0},
			},
		}
		snap := board.NewSnapshot(in)
		b := board.Resolve(snap, board.Filter{})

		Convey("Then a report overrides an assigned status only for its own scout", func() {
			completed, ok := findRecord(b.Completed, "10")
			So(ok, ShouldBeTrue)
			So(completed.AssignmentID, ShouldEqual, "a1")
			So(completed.Status, ShouldEqual, board.StatusCompleted)

			var a2 board.Record
			for _, r := range b.Assigned {
				if r.AssignmentID == "a2" {
					a2 = r
				}
			}
			So(a2.Status, ShouldEqual, board.StatusAssigned)

			a3, ok := findRecord(b.Assigned, "7")
			So(ok, ShouldBeTrue)
			So(a3.Status, ShouldEqual, board.StatusReviewed)
		})

		Convey("Then assigned players never appear as synthetic shortlist records", func() {
			So(b.Shortlisted, ShouldBeEmpty)
		})

		Convey("Then the orphaned assignment is dropped without failing", func() {
			for _, bucket := range [][]board.Record{b.Shortlisted, b.Assigned, b.Completed} {
				_, found := findRecord(bucket, "missing")
				So(found, ShouldBeFalse)
			}
			So(b.Dropped, ShouldEqual, 1)
		})

		Convey("Then an unresolved scout still yields a record", func() {
			rec, ok := findRecord(b.Assigned, "42")
			So(ok, ShouldBeTrue)
			So(rec.ScoutDisplayName, ShouldEqual, "Unknown Scout")
			So(b.UnresolvedScouts, ShouldEqual, 1)
		})

		Convey("Then a scout without a name is shown by email", func() {
			for _, r := range b.Assigned {
				if r.AssignmentID == "a2" {
					So(r.ScoutDisplayName, ShouldEqual, "noname@club.test")
				}
			}
		})

		Convey("Then resolving twice gives identical boards", func() {
			again := board.Resolve(snap, board.Filter{})
			So(cmp.Diff(b, again), ShouldBeEmpty)

			fresh := board.Resolve(board.NewSnapshot(in), board.Filter{})
			So(cmp.Diff(b, fresh), ShouldBeEmpty)
		})

		Convey("Then the inputs are left untouched", func() {
			So(in.Assignments[0].Status, ShouldEqual, model.AssignmentAssigned)
			So(in.Assignments, ShouldHaveLength, 5)
		})
	})
}

func TestResolveFilters(t *testing.T) {
	Convey("Given assignments for two scouts and one unassigned shortlisted player", t, func() {
		in := board.Input{
			Players: players(),
			Scouts:  scouts(),
			Assignments: []model.Assignment{
				{ID: "a1", PlayerID: "10", ScoutID: "s1", Status: model.AssignmentAssigned, CreatedAt: t0},
				{ID: "a2", PlayerID: "7", ScoutID: "s2", Status: model.AssignmentInProgress, CreatedAt: t0},
			},
			ScoutingList: []model.ShortlistEntry{{PlayerID: "42", AddedAt: t0}},
		}
		snap := board.NewSnapshot(in)

		Convey("When filtering by scout", func() {
			b := board.Resolve(snap, board.Filter{ScoutID: "s1"})

			Convey("Then only that scout's assignments remain and synthetic records vanish", func() {
				So(b.Assigned, ShouldHaveLength, 1)
				So(b.Assigned[0].ScoutID, ShouldEqual, "s1")
				So(b.Shortlisted, ShouldBeEmpty)
			})
		})

		Convey("When searching by club, case-insensitively", func() {
			b := board.Resolve(snap, board.Filter{Search: "  HAMBURGER "})

			Convey("Then only the matching shortlisted player remains", func() {
				So(b.Assigned, ShouldBeEmpty)
				So(b.Shortlisted, ShouldHaveLength, 1)
				So(b.Shortlisted[0].PlayerID, ShouldEqual, "42")
			})
		})

		Convey("When searching by player name", func() {
			b := board.Resolve(snap, board.Filter{Search: "mensah"})

			Convey("Then only that player's record remains", func() {
				So(b.Assigned, ShouldHaveLength, 1)
				So(b.Assigned[0].PlayerID, ShouldEqual, "7")
				So(b.Shortlisted, ShouldBeEmpty)
			})
		})

		Convey("When searching for a display placeholder", func() {
			blank := board.NewSnapshot(board.Input{
				Players:      []model.Player{{ID: "99", Name: "Tomas Silva", Club: "  "}},
				ScoutingList: []model.ShortlistEntry{{PlayerID: "99", AddedAt: t0}},
			})

			Convey("Then a player without a club is not matched by its fallback text", func() {
				So(board.Resolve(blank, board.Filter{Search: "unknown"}).Shortlisted, ShouldBeEmpty)
				So(board.Resolve(blank, board.Filter{Search: "club"}).Shortlisted, ShouldBeEmpty)
				b := board.Resolve(blank, board.Filter{Search: "silva"})
				So(b.Shortlisted, ShouldHaveLength, 1)
				So(b.Shortlisted[0].Club, ShouldEqual, board.UnknownClubName)
			})
		})

		Convey("When the snapshot is nil", func() {
			b := board.Resolve(nil, board.Filter{})

			Convey("Then every bucket is empty", func() {
				So(b.Shortlisted, ShouldBeEmpty)
				So(b.Assigned, ShouldBeEmpty)
				So(b.Completed, ShouldBeEmpty)
			})
		})
	})
}

func TestNormalization(t *testing.T) {
	Convey("Given records with missing and malformed fields", t, func() {
		in := board.Input{
			Players: []model.Player{{ID: "1", Name: "  ", Club: "", Positions: []string{" ", "GK "}}},
			Scouts:  []model.Scout{{ID: "s", FirstName: " ", LastName: " "}},
			Assignments: []model.Assignment{
				{ID: "a", PlayerID: "1", ScoutID: "s", Status: "  IN_PROGRESS ", Priority: "high", Notes: " watch set pieces "},
				{ID: "b", PlayerID: "1", ScoutID: "x", Status: "bogus", Priority: "urgent"},
			},
		}
		b := board.Resolve(board.NewSnapshot(in), board.Filter{})

		Convey("Then defaults from the normalization table apply", func() {
			So(b.Assigned, ShouldHaveLength, 2)
			byID := map[string]board.Record{}
			for _, r := range b.Assigned {
				byID[r.AssignmentID] = r
			}
			a := byID["a"]
			So(a.PlayerName, ShouldEqual, board.UnknownPlayerName)
			So(a.Club, ShouldEqual, board.UnknownClubName)
			So(a.Positions, ShouldResemble, []string{"GK"})
			So(a.Status, ShouldEqual, board.StatusInProgress)
			So(a.Priority, ShouldEqual, model.PriorityHigh)
			So(a.Notes, ShouldEqual, "watch set pieces")
			So(a.ScoutDisplayName, ShouldEqual, board.UnknownScout)

			bad := byID["b"]
			So(bad.Status, ShouldEqual, board.StatusAssigned)
			So(bad.Priority, ShouldEqual, model.PriorityNone)
		})
	})
}

func TestScoutDisplayName(t *testing.T) {
	Convey("Given scouts with varying profile completeness", t, func() {
		So(board.ScoutDisplayName(&model.Scout{FirstName: "Ana", LastName: "Costa"}), ShouldEqual, "Ana Costa")
		So(board.ScoutDisplayName(&model.Scout{FirstName: "Ana"}), ShouldEqual, "Ana")
		So(board.ScoutDisplayName(&model.Scout{LastName: "Costa", Email: "a@b.c"}), ShouldEqual, "Costa")
		So(board.ScoutDisplayName(&model.Scout{Email: "a@b.c"}), ShouldEqual, "a@b.c")
		So(board.ScoutDisplayName(&model.Scout{}), ShouldEqual, "Unknown Scout")
		So(board.ScoutDisplayName(nil), ShouldEqual, "Unknown Scout")
	})
}

func TestBucketFor(t *testing.T) {
	Convey("Given every effective status", t, func() {
		So(board.BucketFor(board.StatusMarkedForScouting), ShouldEqual, board.BucketShortlisted)
		So(board.BucketFor(board.StatusCompleted), ShouldEqual, board.BucketCompleted)
		So(board.BucketFor(board.StatusAssigned), ShouldEqual, board.BucketAssigned)
		So(board.BucketFor(board.StatusInProgress), ShouldEqual, board.BucketAssigned)
		So(board.BucketFor(board.StatusReviewed), ShouldEqual, board.BucketAssigned)
	})
}
