// Command genmsg generates synthetic TEMPDROP message fixtures for exercising
// the pipeline without live reconnaissance data. Messages carry realistic
// header, marker, and observation lines with seeded random positions, so
// repeated runs produce identical fixtures.
//
// Usage:
//
//	go run ./cmd/genmsg -out data/fixtures -count 4 -cycle 202409181200
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// stations are WMO reconnaissance aircraft call signs used round-robin for
// the generated file suffixes.
var stations = []string{"KNHC", "KWBC", "KBIX"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory for generated message files")
	count := flag.Int("count", 4, "number of messages to generate")
	cycleArg := flag.String("cycle", "202409181200", "cycle timestamp of the first message (yyyymmddhhmm)")
	seed := flag.Int64("seed", 1, "random seed for positions and winds")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	cycle, err := time.ParseInLocation("200601021504", *cycleArg, time.UTC)
	if err != nil {
		return fmt.Errorf("parse -cycle: %w", err)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *count; i++ {
		msgCycle := cycle.Add(time.Duration(i) * 6 * time.Hour)
		station := stations[i%len(stations)]
		name := msgCycle.Format("200601021504") + "." + station
		path := filepath.Join(*out, name)

		if err := os.WriteFile(path, []byte(message(msgCycle, station, rng)), 0o600); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		log.Printf("wrote %s", path)
	}

	log.Printf("generated %d message(s) in %s", *count, *out)
	return nil
}

// message renders one synthetic TEMPDROP message. The release fix is drawn
// from the Atlantic basin and the splash fix is offset a few hundredths of a
// degree, matching the scale of a real sonde drift.
func message(cycle time.Time, station string, rng *rand.Rand) string {
	relLat := 15.0 + rng.Float64()*15.0
	relLon := 45.0 + rng.Float64()*35.0
	spgLat := relLat - 0.02 - rng.Float64()*0.04
	spgLon := relLon + 0.02 + rng.Float64()*0.04

	day := cycle.Format("02")
	hhmm := cycle.Format("1504")
	relTime := cycle.Add(5 * time.Minute).Format("021504")
	spgTime := cycle.Add(10 * time.Minute).Format("021504")

	var b strings.Builder
	fmt.Fprintf(&b, "URNT11 %s %s%s\n", station, day, hhmm)
	fmt.Fprintf(&b, "XXAA %s%s1 99%03.0f 7%04.0f 06%03d\n",
		cycle.Format("0215"), "/", relLat*10, relLon*10, rng.Intn(999))
	fmt.Fprintf(&b, "88999 77999 31313 09608 8%s\n", cycle.Format("1504"))
	fmt.Fprintf(&b, "61616 AF309 %s A CYCLONE OB %02d\n", cycle.Format("0102"), rng.Intn(30))
	fmt.Fprintf(&b, "61616 REL %s %s SPG %s %s\n",
		location(relLat, relLon), relTime, location(spgLat, spgLon), spgTime)
	fmt.Fprintf(&b, "XXBB %s%s1 99%03.0f 7%04.0f 06%03d\n",
		cycle.Format("0215"), "/", relLat*10, relLon*10, rng.Intn(999))
	return b.String()
}

// location renders a coordinate pair in the marker token form, degrees times
// one hundred with hemisphere letters (2134N07212W).
func location(lat, lon float64) string {
	return fmt.Sprintf("%04.0fN%05.0fW", lat*100, lon*100)
}
