package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/datatypes"

	"github.com/bootyhunt/server/internal/adapters/repository"
)

func newStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()
	store, err := repository.New(context.Background())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(score int64) *repository.Run {
	return &repository.Run{
		ID:         uuid.NewString(),
		Seed:       12345,
		ShipClass:  "sloop",
		DoctrineID: "boarder",
		Score:      score,
		Waves:      4,
		PlayerName: "Test Player",
		WeekKey:    "2026-W35",
	}
}

func TestRuns(t *testing.T) {
	ctx := context.Background()

	Convey("Given an open store", t, func() {
		store := newStore(t)

		Convey("When runs are inserted", func() {
			So(store.InsertRun(ctx, sampleRun(100)), ShouldBeNil)
			So(store.InsertRun(ctx, sampleRun(300)), ShouldBeNil)
			So(store.InsertRun(ctx, sampleRun(200)), ShouldBeNil)

			Convey("Then strictly-greater counting works", func() {
				n, err := store.CountRunsScoringAbove(ctx, 200)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)

				n, err = store.CountRunsScoringAbove(ctx, 199)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)

				// Equal scores do not count.
				n, err = store.CountRunsScoringAbove(ctx, 300)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
			})

			Convey("Then TopRuns orders by score descending and caps at limit", func() {
				runs, err := store.TopRuns(ctx, repository.RunFilter{Limit: 2})
				So(err, ShouldBeNil)
				So(len(runs), ShouldEqual, 2)
				So(runs[0].Score, ShouldEqual, 300)
				So(runs[1].Score, ShouldEqual, 200)
			})

			Convey("Then week and seed filters restrict the view", func() {
				other := sampleRun(999)
				other.WeekKey = "2026-W36"
				other.Seed = 777
				So(store.InsertRun(ctx, other), ShouldBeNil)

				runs, err := store.TopRuns(ctx, repository.RunFilter{WeekKey: "2026-W35", Limit: 10})
				So(err, ShouldBeNil)
				So(len(runs), ShouldEqual, 3)

				seed := int64(777)
				runs, err = store.TopRuns(ctx, repository.RunFilter{Seed: &seed, Limit: 10})
				So(err, ShouldBeNil)
				So(len(runs), ShouldEqual, 1)
				So(runs[0].Score, ShouldEqual, 999)

				runs, err = store.TopRuns(ctx, repository.RunFilter{WeekKey: "2026-W36", Seed: &seed, Limit: 10})
				So(err, ShouldBeNil)
				So(len(runs), ShouldEqual, 1)
			})
		})

		Convey("When a run carries a ghost tape", func() {
			run := sampleRun(50)
			run.GhostTape = []byte{0x1f, 0x8b, 0x01, 0x02}
			So(store.InsertRun(ctx, run), ShouldBeNil)

			Convey("Then GetRun returns it intact", func() {
				got, err := store.GetRun(ctx, run.ID)
				So(err, ShouldBeNil)
				So(got.GhostTape, ShouldResemble, run.GhostTape)
				So(got.PlayerName, ShouldEqual, "Test Player")
			})
		})

		Convey("When an unknown run is fetched", func() {
			_, err := store.GetRun(ctx, "no-such-run")

			Convey("Then the not-found sentinel surfaces", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestEnsureRegattaSeed(t *testing.T) {
	ctx := context.Background()

	Convey("Given an open store", t, func() {
		store := newStore(t)

		Convey("When the first writer stores a seed", func() {
			got, err := store.EnsureRegattaSeed(ctx, "2026-W35", 42)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 42)

			Convey("Then later writers observe the stored value, not their own", func() {
				got, err := store.EnsureRegattaSeed(ctx, "2026-W35", 99)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, 42)
			})

			Convey("Then other weeks are independent", func() {
				got, err := store.EnsureRegattaSeed(ctx, "2026-W36", 99)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, 99)
			})
		})

		Convey("When many writers race on a fresh week", func() {
			const writers = 16
			results := make([]int64, writers)
			errs := make([]error, writers)
			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], errs[i] = store.EnsureRegattaSeed(ctx, "2026-W40", int64(1000+i))
				}(i)
			}
			wg.Wait()

			Convey("Then all converge on one stored seed without error", func() {
				for i := 0; i < writers; i++ {
					So(errs[i], ShouldBeNil)
					So(results[i], ShouldEqual, results[0])
				}
			})
		})
	})
}

func newFire(code string, expiresAt time.Time) *repository.SignalFire {
	return &repository.SignalFire{
		Code:       code,
		CreatorRun: uuid.NewString(),
		AidType:    "supplies",
		AidAmount:  10,
		HeatCost:   5.0,
		ExpiresAt:  expiresAt,
	}
}

func TestSignalFires(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	Convey("Given an open store", t, func() {
		store := newStore(t)

		Convey("When a code is inserted twice", func() {
			So(store.InsertSignalFire(ctx, newFire("AAAA2222", now.Add(72*time.Hour))), ShouldBeNil)
			err := store.InsertSignalFire(ctx, newFire("AAAA2222", now.Add(72*time.Hour)))

			Convey("Then the second insert reports a duplicate", func() {
				So(errors.Is(err, repository.ErrDuplicateCode), ShouldBeTrue)
			})
		})

		Convey("When an active unexpired code is redeemed", func() {
			So(store.InsertSignalFire(ctx, newFire("BBBB3333", now.Add(72*time.Hour))), ShouldBeNil)
			fire, err := store.RedeemSignalFire(ctx, "BBBB3333", now)

			Convey("Then the payload returns and state flips", func() {
				So(err, ShouldBeNil)
				So(fire.AidType, ShouldEqual, "supplies")
				So(fire.AidAmount, ShouldEqual, 10)
				So(fire.HeatCost, ShouldEqual, 5.0)
				So(fire.Redeemed, ShouldBeTrue)
				So(fire.RedeemedAt, ShouldNotBeNil)
			})

			Convey("Then a second redemption conflicts", func() {
				_, err := store.RedeemSignalFire(ctx, "BBBB3333", now.Add(time.Minute))
				So(errors.Is(err, repository.ErrAlreadyRedeemed), ShouldBeTrue)
			})
		})

		Convey("When a code past expiry is redeemed", func() {
			So(store.InsertSignalFire(ctx, newFire("CCCC4444", now.Add(-2*time.Hour))), ShouldBeNil)
			_, err := store.RedeemSignalFire(ctx, "CCCC4444", now)

			Convey("Then the expiry sentinel surfaces", func() {
				So(errors.Is(err, repository.ErrExpired), ShouldBeTrue)
			})
		})

		Convey("When an unknown code is redeemed", func() {
			_, err := store.RedeemSignalFire(ctx, "ZZZZ9999", now)

			Convey("Then the not-found sentinel surfaces", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When many redeemers race on one code", func() {
			So(store.InsertSignalFire(ctx, newFire("DDDD5555", now.Add(72*time.Hour))), ShouldBeNil)

			const redeemers = 16
			errs := make([]error, redeemers)
			var wg sync.WaitGroup
			for i := 0; i < redeemers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = store.RedeemSignalFire(ctx, "DDDD5555", now)
				}(i)
			}
			wg.Wait()

			Convey("Then exactly one succeeds and the rest conflict", func() {
				successes := 0
				for _, err := range errs {
					if err == nil {
						successes++
						continue
					}
					So(errors.Is(err, repository.ErrAlreadyRedeemed), ShouldBeTrue)
				}
				So(successes, ShouldEqual, 1)
			})
		})
	})
}

func TestTide(t *testing.T) {
	ctx := context.Background()

	Convey("Given an open store", t, func() {
		store := newStore(t)

		Convey("When the omen for a week is ensured twice with different picks", func() {
			first, err := store.EnsureTideOmen(ctx, &repository.TideOmen{
				WeekKey: "2026-W35", OmenID: "red_tide", OmenName: "Red Tide",
				Modifiers: datatypes.JSONMap{"speed_multiplier": 1.05},
			})
			So(err, ShouldBeNil)

			second, err := store.EnsureTideOmen(ctx, &repository.TideOmen{
				WeekKey: "2026-W35", OmenID: "fog_bank", OmenName: "Fog Bank",
				Modifiers: datatypes.JSONMap{"vision_multiplier": 0.70},
			})
			So(err, ShouldBeNil)

			Convey("Then the first stored omen wins for the week", func() {
				So(first.OmenID, ShouldEqual, "red_tide")
				So(second.OmenID, ShouldEqual, "red_tide")
				So(second.OmenName, ShouldEqual, "Red Tide")
			})
		})

		Convey("When contributions are appended", func() {
			for i := 0; i < 3; i++ {
				err := store.InsertTideContribution(ctx, &repository.TideContribution{
					ID:      uuid.NewString(),
					WeekKey: "2026-W35",
					Metric:  fmt.Sprintf("gold_hoarded_%d", i),
					Value:   float64(i) * 1.5,
				})
				So(err, ShouldBeNil)
			}

			Convey("Then every append is accepted with no uniqueness constraint", func() {
				err := store.InsertTideContribution(ctx, &repository.TideContribution{
					ID:      uuid.NewString(),
					WeekKey: "2026-W35",
					Metric:  "gold_hoarded_0",
					Value:   0,
				})
				So(err, ShouldBeNil)
			})
		})
	})
}
