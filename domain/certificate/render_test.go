package certificate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

func parsePage(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func cellTexts(doc *html.Node, class string) []string {
	nodes := findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" && hasClass(n, class)
	})
	texts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		texts = append(texts, textOf(n))
	}
	return texts
}

func TestRender_LabelsAndValues(t *testing.T) {
	// Arrange
	record := sampleRecord()

	// Act
	doc := parsePage(t, Render(record))

	// Assert
	assert.Equal(t, []string{
		"Certificate No.", "Participant Name", "ID Number", "Course", "Company", "Training Date", "Valid Until",
	}, cellTexts(doc, "info-label"))
	assert.Equal(t, []string{
		record.CertificateNo, record.ParticipantName, record.IDNumber, record.Course,
		record.CompanyName, record.TrainingDate, record.ExpiryDate,
	}, cellTexts(doc, "info-value"))
}

func TestRender_EachValueAppearsOnceInBody(t *testing.T) {
	record := sampleRecord()
	doc := parsePage(t, Render(record))

	body := findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "certificate-body")
	})
	require.Len(t, body, 1)
	text := textOf(body[0])

	for _, value := range []string{
		record.CertificateNo, record.ParticipantName, record.IDNumber, record.Course,
		record.CompanyName, record.TrainingDate, record.ExpiryDate,
	} {
		assert.Equal(t, 1, strings.Count(text, value), value)
	}
}

func TestRender_TitleCarriesCertificateNo(t *testing.T) {
	doc := parsePage(t, Render(sampleRecord()))

	titles := findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "title"
	})
	require.Len(t, titles, 1)
	assert.Equal(t, "Certificate Verification - PK17058", textOf(titles[0]))
}

func TestRender_SelfContained(t *testing.T) {
	page := Render(sampleRecord())
	doc := parsePage(t, page)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "VERIFIED")
	assert.Contains(t, page, `id="timestamp"`)
	assert.Contains(t, page, "Verified on ")

	external := findAll(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, attr := range n.Attr {
			if attr.Key == "src" || attr.Key == "href" {
				return true
			}
		}
		return false
	})
	assert.Empty(t, external)

	scripts := findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script"
	})
	assert.Len(t, scripts, 1)
}

func TestRender_EscapesMarkup(t *testing.T) {
	// Arrange
	record := sampleRecord()
	record.ParticipantName = `<script>alert("x")</script>`
	record.CompanyName = "Smith & Sons <Ltd>"

	// Act
	page := Render(record)
	doc := parsePage(t, page)

	// Assert
	assert.NotContains(t, page, `<script>alert`)
	values := cellTexts(doc, "info-value")
	require.Len(t, values, 7)
	assert.Equal(t, record.ParticipantName, values[1])
	assert.Equal(t, record.CompanyName, values[4])

	scripts := findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script"
	})
	assert.Len(t, scripts, 1)
}

func TestRender_EmptyAndLongValues(t *testing.T) {
	testCases := []struct {
		name   string
		record Record
	}{
		{"empty fields", Record{CertificateNo: "E1"}},
		{"long fields", Record{
			CertificateNo:   "L1",
			ParticipantName: strings.Repeat("Name ", 2000),
			IDNumber:        strings.Repeat("9", 5000),
			Course:          strings.Repeat("Course ", 1000),
			CompanyName:     strings.Repeat("Ü", 3000),
			TrainingDate:    "01 July 2024",
			ExpiryDate:      "30 June 2027",
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := parsePage(t, Render(tc.record))

			values := cellTexts(doc, "info-value")
			require.Len(t, values, 7)
			assert.Equal(t, tc.record.ParticipantName, values[1])
			assert.Equal(t, tc.record.IDNumber, values[2])
			assert.Equal(t, tc.record.CompanyName, values[4])
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	assert.Equal(t, Render(sampleRecord()), Render(sampleRecord()))
}

func TestWriteHTML_MatchesRender(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteHTML(&buf, sampleRecord()))

	assert.Equal(t, Render(sampleRecord()), buf.String())
}
