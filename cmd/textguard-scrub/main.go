// Command textguard-scrub runs the in-process detectors over text from a
// flag or stdin and prints the scrubbed result. Remote detectors are not
// used; this is the offline subset of the API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"textguard/internal/core/rulepack"
	mdom "textguard/internal/services/moderate/domain"
	moderatesvc "textguard/internal/services/moderate/service"
	pdom "textguard/internal/services/pii/domain"
	piisvc "textguard/internal/services/pii/service"
)

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func readText(flagText string) (string, error) {
	if flagText != "" {
		return flagText, nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func main() {
	var (
		text      = flag.String("text", "", "text to scan; reads stdin when empty")
		mode      = flag.String("mode", "pii", "pii | profanity | both")
		labels    = flag.String("labels", "", "comma separated entity kinds to restrict to")
		threshold = flag.Float64("threshold", 0, "confidence threshold override (0 = per kind defaults)")
		profanity = flag.String("profanity", "mask", "mask | remove")
		asJSON    = flag.Bool("json", false, "print the full result as JSON instead of the text")
	)
	flag.Parse()

	in, err := readText(strings.TrimSpace(*text))
	must(err)

	pack, err := rulepack.Load()
	must(err)

	ctx := context.Background()
	out := in
	var results []any

	if *mode == "pii" || *mode == "both" {
		svc := piisvc.New(pack, nil, nil)
		res, err := svc.Validate(ctx, pdom.ValidateInput{
			Text:      out,
			Labels:    splitCSV(*labels),
			Threshold: *threshold,
		})
		must(err)
		out = res.RedactedText
		results = append(results, res)
	}

	if *mode == "profanity" || *mode == "both" {
		svc := moderatesvc.New(pack, nil, nil)
		res, err := svc.Validate(ctx, mdom.ValidateInput{
			Text:      out,
			Profanity: *profanity,
		})
		must(err)
		out = res.Output
		results = append(results, res)
	}

	if len(results) == 0 {
		must(fmt.Errorf("unknown mode %q (want pii, profanity, or both)", *mode))
	}

	if *asJSON {
		enc, err := json.MarshalIndent(results, "", "  ")
		must(err)
		fmt.Println(string(enc))
		return
	}
	fmt.Println(out)
}

func splitCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
