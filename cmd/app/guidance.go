package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/prasetyowira/certqr/domain/certificate"
)

const rule = "=================================================="

// shortenerHosts are URL shorteners that can stand in for the real host
var shortenerHosts = []string{"bit.ly", "tinyurl", "short.io"}

func usesShortener(baseURL string) bool {
	for _, host := range shortenerHosts {
		if strings.Contains(baseURL, host) {
			return true
		}
	}
	return false
}

func printHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n%s\n\n", rule, title, rule)
}

// printBaseURLWarning flags the placeholder base URL left in the defaults
func printBaseURLWarning(w io.Writer, baseURL string) {
	if !strings.Contains(baseURL, "YOUR_USERNAME") {
		return
	}
	fmt.Fprintln(w, "WARNING: the base URL still contains YOUR_USERNAME.")
	fmt.Fprintln(w, "   Set BASE_URL (or --base-url) to where the pages will be hosted,")
	fmt.Fprintln(w, "   e.g. https://username.github.io/certificates")
	fmt.Fprintln(w)
}

func printArtifacts(w io.Writer, a *certificate.Artifacts) {
	printHeader(w, "GENERATED FILES")
	fmt.Fprintf(w, "HTML Certificate: %s\n", a.HTMLPath)
	fmt.Fprintf(w, "QR Code:          %s\n", a.QRPath)
	fmt.Fprintf(w, "URL:              %s\n", a.URL)
}

func printNextSteps(w io.Writer, baseURL, outputDir string) {
	shortened := usesShortener(baseURL)
	if shortened {
		fmt.Fprintln(w, "\nUSING A SHORTENED URL:")
		fmt.Fprintln(w, "   Create the short link at the service before sharing the QR code.")
		fmt.Fprintln(w, "   It must redirect to the hosted certificate page.")
	}

	printHeader(w, "NEXT STEPS")
	fmt.Fprintln(w, "1. Make sure BASE_URL points at your static host")
	fmt.Fprintf(w, "2. Publish every file in '%s/' to that host (e.g. a GitHub Pages repo)\n", outputDir)
	fmt.Fprintln(w, "3. Enable the static site (GitHub Pages: repository settings)")

	if !shortened {
		fmt.Fprintln(w, "\n   OPTIONAL - to keep your username out of the URL:")
		fmt.Fprintln(w, "   4. Shorten the certificate URL with bit.ly or tinyurl.com")
		fmt.Fprintln(w, "   5. Set BASE_URL to the shortened prefix and generate again")
	}

	fmt.Fprintln(w, "\n   Share the QR code PNG. Scanning it opens the certificate page.")
	fmt.Fprintf(w, "%s\n\n", rule)
}
