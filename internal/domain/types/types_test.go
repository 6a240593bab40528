package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/scoutdesk/internal/domain/board"
	"github.com/okian/scoutdesk/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func TestBoardView(t *testing.T) {
	convey.Convey("Given a board with one shortlisted and two assigned records", t, func() {
		b := board.Board{
			Shortlisted: []board.Record{{PlayerID: "1", Status: board.StatusMarkedForScouting}},
			Assigned:    []board.Record{{PlayerID: "2"}, {PlayerID: "3"}},
			Completed:   []board.Record{},
		}
		at := time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)

		convey.Convey("When wrapping it in a view", func() {
			v := types.NewBoardView(b, 7, at)

			convey.Convey("Then counts and version are carried", func() {
				convey.So(v.Counts[board.BucketShortlisted], convey.ShouldEqual, 1)
				convey.So(v.Counts[board.BucketAssigned], convey.ShouldEqual, 2)
				convey.So(v.Counts[board.BucketCompleted], convey.ShouldEqual, 0)
				convey.So(v.Version, convey.ShouldEqual, 7)
			})

			convey.Convey("And the buckets are flattened into the JSON object", func() {
				raw, err := json.Marshal(v)
				convey.So(err, convey.ShouldBeNil)
				var decoded map[string]any
				convey.So(json.Unmarshal(raw, &decoded), convey.ShouldBeNil)
				convey.So(decoded, convey.ShouldContainKey, "shortlisted")
				convey.So(decoded, convey.ShouldContainKey, "counts")
				convey.So(decoded["version"], convey.ShouldEqual, 7.0)
			})
		})
	})
}
