package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	dedupe "github.com/okian/scoutdesk/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		ctx := context.Background()

		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should start empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When claiming keys", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the key is new", func() {
				state := d.Claim(ctx, "req-1")

				Convey("Then it is fresh and recorded", func() {
					So(state, ShouldEqual, dedupe.Fresh)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the first claim has not completed", func() {
				d.Claim(ctx, "req-1")
				state := d.Claim(ctx, "req-1")

				Convey("Then the key is pending", func() {
					So(state, ShouldEqual, dedupe.Pending)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the first claim completed", func() {
				d.Claim(ctx, "req-1")
				d.Complete(ctx, "req-1")

				Convey("Then the key is done", func() {
					So(d.Claim(ctx, "req-1"), ShouldEqual, dedupe.Done)
				})
			})

			Convey("And the key is unrecorded", func() {
				d.Claim(ctx, "req-1")
				d.Unrecord(ctx, "req-1")

				Convey("Then it can be claimed again", func() {
					So(d.Size(), ShouldEqual, 0)
					So(d.Claim(ctx, "req-1"), ShouldEqual, dedupe.Fresh)
				})
			})

			Convey("And an unknown key is completed or unrecorded", func() {
				d.Complete(ctx, "nope")
				d.Unrecord(ctx, "nope")

				Convey("Then nothing changes", func() {
					So(d.Size(), ShouldEqual, 0)
					So(d.Claim(ctx, "nope"), ShouldEqual, dedupe.Fresh)
				})
			})
		})

		Convey("When the deduper is bounded", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
			for i := 0; i < 4; i++ {
				d.Claim(ctx, fmt.Sprintf("req-%d", i))
			}

			Convey("Then the oldest key is evicted first", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.Claim(ctx, "req-3"), ShouldEqual, dedupe.Pending)
				So(d.Claim(ctx, "req-0"), ShouldEqual, dedupe.Fresh)
			})

			Convey("And a repeated claim does not protect the oldest key", func() {
				So(d.Claim(ctx, "req-1"), ShouldEqual, dedupe.Pending)
				d.Claim(ctx, "req-9")
				So(d.Claim(ctx, "req-1"), ShouldEqual, dedupe.Fresh)
			})
		})

		Convey("When the deduper is unbounded", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
			for i := 0; i < 1000; i++ {
				d.Claim(ctx, fmt.Sprintf("req-%d", i))
			}

			Convey("Then every key is kept", func() {
				So(d.Size(), ShouldEqual, 1000)
			})
		})

		Convey("When keys outlive the ttl", func() {
			now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
			d := dedupe.NewInMemoryDeduper(
				dedupe.WithTTL(time.Minute),
				dedupe.WithClock(func() time.Time { return now }),
			)
			d.Claim(ctx, "req-old")
			d.Complete(ctx, "req-old")
			now = now.Add(2 * time.Minute)

			Convey("Then they are forgotten", func() {
				So(d.Claim(ctx, "req-old"), ShouldEqual, dedupe.Fresh)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}

func TestInMemoryDeduperConcurrency(t *testing.T) {
	Convey("Given many goroutines racing on the same keys", t, func() {
		d := dedupe.NewInMemoryDeduper()
		ctx := context.Background()

		var wg sync.WaitGroup
		var mu sync.Mutex
		fresh := map[string]int{}
		for g := 0; g < 16; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					key := fmt.Sprintf("req-%d", i)
					if d.Claim(ctx, key) == dedupe.Fresh {
						mu.Lock()
						fresh[key]++
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then each key is reported new exactly once", func() {
			So(len(fresh), ShouldEqual, 50)
			for _, n := range fresh {
				So(n, ShouldEqual, 1)
			}
			So(d.Size(), ShouldEqual, 50)
		})
	})
}
