// Package e2e provides end-to-end tests with a generated profile corpus and
// multiple query test cases.
package e2e

import (
	"fmt"
)

// Header is the column order used by the generated corpus files.
var Header = []string{
	"full_name", "job_title", "industry", "summary",
	"location_country", "education", "experience", "skills", "job_summary",
}

// QueryTestCase defines an OR-mode query, the columns to search, and a name
// that must appear in the results.
type QueryTestCase struct {
	Query        string
	Columns      []string
	ExpectedName string
	Description  string
}

// Corpus holds raw profile rows and query test cases.
type Corpus struct {
	Rows       [][]string
	TestCases  []QueryTestCase
	Duplicates int
	Malformed  int
}

var seedProfiles = []struct {
	name     string
	title    string
	industry string
	summary  string
	country  string
	skills   string
}{
	{"Amara Okafor", "Data Engineer", "Information Technology", "Builds batch pipelines that move profile data between warehouses", "Nigeria", "['Python', 'Spark', 'Airflow']"},
	{"Bram de Vries", "Backend Developer", "Software Development", "Ships payment APIs with strict latency budgets", "Netherlands", "['Go', 'PostgreSQL', 'Kafka']"},
	{"Chen Wei", "Machine Learning Engineer", "Artificial Intelligence", "Trains ranking models for candidate matching", "Singapore", "['PyTorch', 'Python', 'Ray']"},
	{"Dalia Hassan", "Product Manager", "Consumer Electronics", "Owns the roadmap for a wearable health tracker", "Egypt", "['Roadmapping', 'SQL']"},
	{"Emil Novak", "Site Reliability Engineer", "Cloud Services", "Keeps a multi-region Kubernetes fleet inside its error budget", "Czechia", "['Kubernetes', 'Terraform', 'Prometheus']"},
	{"Fatima Zahra", "Security Analyst", "Financial Services", "Hunts fraud patterns in transaction streams", "Morocco", "['Splunk', 'Python']"},
	{"Goran Petrovic", "Frontend Developer", "Media Production", "Renders newsroom dashboards that update in real time", "Serbia", "['TypeScript', 'React']"},
	{"Hana Kobayashi", "Research Scientist", "Biotechnology", "Designs assays for protein folding experiments", "Japan", "['R', 'Statistics']"},
	{"Ivan Morozov", "Database Administrator", "Telecommunications", "Tunes replication for a billing cluster", "Kazakhstan", "['PostgreSQL', 'Ansible']"},
	{"Julia Ferreira", "UX Designer", "E-commerce", "Prototypes checkout flows that cut abandonment", "Brazil", "['Figma', 'User Research']"},
}

// BuildCorpus returns rows for n profiles plus deliberate noise: duplicate
// rows, rows with serialized artifacts, and numeric junk in text columns.
// The seed profiles cycle; numbered variants keep every full_name unique.
func BuildCorpus(n int) *Corpus {
	rows := [][]string{Header}
	for i := 0; i < n; i++ {
		p := seedProfiles[i%len(seedProfiles)]
		name := p.name
		if i >= len(seedProfiles) {
			name = fmt.Sprintf("%s %d", p.name, i)
		}
		rows = append(rows, []string{
			name, p.title, p.industry, p.summary, p.country,
			"['State University']",
			"['Acme Corp : " + p.title + "']",
			p.skills,
			"Responsible for " + p.summary,
		})
	}

	c := &Corpus{Rows: rows}

	// One exact duplicate of the first data row.
	c.Rows = append(c.Rows, append([]string(nil), rows[1]...))
	c.Duplicates++

	// Rows that normalize to empty or partial values.
	c.Rows = append(c.Rows, []string{
		"C:\\Users\\batch\\profiles.csv", "3 Engineer", "Consulting 42", "", "10001+",
		"not a list", "", "['+31612345678']", "",
	})
	c.Malformed++

	c.TestCases = []QueryTestCase{
		{"Amara", []string{"full_name"}, "Amara Okafor", "exact first name"},
		{"Kubernetes", []string{"skills"}, "Emil Novak", "tag column exact term"},
		{"fraud", []string{"summary", "job_summary"}, "Fatima Zahra", "text column token"},
		{"Netherlands", []string{"location_country"}, "Bram de Vries", "country match"},
		{"ranking candidate", []string{"summary"}, "Chen Wei", "multi-token OR query"},
	}
	return c
}
