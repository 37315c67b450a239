package main

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acmchapter/recruitment-api/cmd/server/internal/models"
	"github.com/acmchapter/recruitment-api/internal/types"
)

func (s *ServerTestSuite) Test_Submit() {
	tests := []struct {
		name           string
		mutate         func(body map[string]any)
		bodyTester     func(t *testing.T, body map[string]any)
		expectedStatus int
	}{
		{
			name:           "Valid",
			mutate:         func(map[string]any) {},
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["success"], "expected success")
				assert.Contains(t, body["message"], "All 1 domain(s) submitted successfully!")
			},
		},
		{
			name: "UppercaseRollNumberNormalized",
			mutate: func(body map[string]any) {
				// Distinct roll: the Valid case already owns 23ucs123 + ai-ml.
				body["roll_number"] = "23UCS124"
			},
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["success"], "expected success")
			},
		},
		{
			name: "MissingName",
			mutate: func(body map[string]any) {
				delete(body, "name")
			},
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name: "MalformedRollNumber",
			mutate: func(body map[string]any) {
				body["roll_number"] = "xxucs123"
			},
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name: "MalformedEmail",
			mutate: func(body map[string]any) {
				body["email"] = "not-an-email"
			},
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name: "UnknownDomain",
			mutate: func(body map[string]any) {
				body["domains"] = []string{"astrology"}
			},
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name: "EmptyDomains",
			mutate: func(body map[string]any) {
				body["domains"] = []string{}
			},
			expectedStatus: http.StatusBadRequest,
			bodyTester:     assertErrorBodyWithFields,
		},
		{
			name: "CompetitiveWithoutProfiles",
			mutate: func(body map[string]any) {
				body["domains"] = []string{"competitive-programming"}
			},
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["message"], "coding profile")
			},
		},
		{
			name: "CompetitiveWithProfile",
			mutate: func(body map[string]any) {
				body["domains"] = []string{"competitive-programming"}
				body["codeforces_profile"] = "https://codeforces.com/profile/student"
				delete(body, "project_title")
			},
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["success"], "expected success")

				data := body["data"].([]any)
				row := data[0].(map[string]any)
				assert.Equal(
					t,
					types.CompetitiveProgrammingTitle,
					row["project_title"],
					"placeholder title not synthesized",
				)
			},
		},
		{
			name: "NonCompetitiveWithoutProjectTitle",
			mutate: func(body map[string]any) {
				delete(body, "project_title")
			},
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["message"], "Project title")
			},
		},
	}

	for i, test := range tests {
		s.Run(test.name, func() {
			t := s.T()

			body := validSubmission("ai-ml")
			test.mutate(body)

			// Distinct client per case keeps the submit window out of play.
			clientIP := fmt.Sprintf("10.1.0.%d", i+1)
			req := jsonRequest(t, http.MethodPost, s.server.URL+"/submit/", body, clientIP)
			res := doRequest(t, req)

			assert.Equal(t, test.expectedStatus, res.code, "unexpected status: %s", res.body)
			test.bodyTester(t, parseBody(t, res.body))
		})
	}
}

func (s *ServerTestSuite) Test_SubmitMultiDomain() {
	t := s.T()

	body := validSubmission("web-development", "ai-ml")
	req := jsonRequest(t, http.MethodPost, s.server.URL+"/submit/", body, "10.2.0.1")
	res := doRequest(t, req)

	assert.Equal(t, http.StatusOK, res.code, "unexpected status: %s", res.body)

	parsed := parseBody(t, res.body)
	assert.Equal(t, true, parsed["success"], "expected success")
	assert.Len(t, parsed["data"], 2, "expected one row per domain")
	assert.Contains(t, parsed["message"], "All 2 domain(s) submitted successfully!")

	var count int64
	s.Require().
		NoError(s.tx.Model(&models.Submission{}).Where("roll_number = ?", "23ucs123").Count(&count).Error)
	assert.EqualValues(t, 2, count, "expected two persisted rows")
}

func (s *ServerTestSuite) Test_SubmitDuplicateDomain() {
	t := s.T()

	seedSubmission(t, s.tx, "23ucs123", types.DomainAIML)

	body := validSubmission("ai-ml")
	req := jsonRequest(t, http.MethodPost, s.server.URL+"/submit/", body, "10.2.0.2")
	res := doRequest(t, req)

	assert.Equal(t, http.StatusBadRequest, res.code, "unexpected status: %s", res.body)
	assert.Contains(t, res.body, "already submitted", "expected duplicate error copy")
}

func (s *ServerTestSuite) Test_SubmitPartialSuccess() {
	t := s.T()

	seedSubmission(t, s.tx, "23ucs123", types.DomainAIML)

	body := validSubmission("web-development", "ai-ml")
	req := jsonRequest(t, http.MethodPost, s.server.URL+"/submit/", body, "10.2.0.3")
	res := doRequest(t, req)

	assert.Equal(t, http.StatusOK, res.code, "unexpected status: %s", res.body)

	parsed := parseBody(t, res.body)
	assert.Equal(t, true, parsed["success"], "partial success is still success")
	assert.Len(t, parsed["data"], 1, "only the fresh domain inserts")
	assert.Contains(t, parsed["message"], "Partial success: 1 domain(s) submitted successfully.")
	assert.Contains(t, parsed["message"], "already submitted")
}

func (s *ServerTestSuite) Test_SubmitHourlyRowCap() {
	t := s.T()

	// Saturate the trailing-hour cap with synthetic domain labels; the
	// unique index is per (roll_number, domain).
	for i := range models.MaxRowsPerHour {
		seedSubmission(t, s.tx, "23ucs123", types.Domain(fmt.Sprintf("filler-%d", i)))
	}

	body := validSubmission("ai-ml")
	req := jsonRequest(t, http.MethodPost, s.server.URL+"/submit/", body, "10.2.0.4")
	res := doRequest(t, req)

	assert.Equal(t, http.StatusBadRequest, res.code, "unexpected status: %s", res.body)
	assert.Contains(t, res.body, "last hour", "expected hourly cap error copy")
}

func (s *ServerTestSuite) Test_SubmitSanitizesFreeText() {
	t := s.T()

	body := validSubmission("ai-ml")
	body["project_title"] = `<script>alert("x")</script>Title`
	body["project_description"] = "javascript:alert(1) description"

	req := jsonRequest(t, http.MethodPost, s.server.URL+"/submit/", body, "10.2.0.5")
	res := doRequest(t, req)

	assert.Equal(t, http.StatusOK, res.code, "unexpected status: %s", res.body)

	var row models.Submission
	s.Require().
		NoError(s.tx.Where("roll_number = ? AND domain = ?", "23ucs123", "ai-ml").First(&row).Error)

	for _, banned := range []string{"<", ">", `"`, "javascript:"} {
		assert.NotContains(t, row.ProjectTitle, banned, "title not sanitized")
		assert.NotContains(t, row.ProjectDescription, banned, "description not sanitized")
	}
	assert.Contains(t, row.ProjectTitle, "Title", "legit text should survive")
}

func (s *ServerTestSuite) Test_SubmitPayloadTooLarge() {
	t := s.T()

	body := validSubmission("ai-ml")
	body["additional_comments"] = strings.Repeat("a", 60_000)

	req := jsonRequest(t, http.MethodPost, s.server.URL+"/submit/", body, "10.2.0.6")
	res := doRequest(t, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, res.code, "unexpected status: %s", res.body)
}

func (s *ServerTestSuite) Test_SubmitRateLimited() {
	t := s.T()

	const clientIP = "10.2.0.7"

	// The window allows 3 requests per 5 minutes per client.
	for i, domain := range []string{"web-development", "ai-ml", "generative-ai"} {
		body := validSubmission(domain)
		req := jsonRequest(t, http.MethodPost, s.server.URL+"/submit/", body, clientIP)
		res := doRequest(t, req)

		assert.Equal(t, http.StatusOK, res.code, "request %d unexpectedly failed: %s", i, res.body)
	}

	body := validSubmission("creative-domain")
	req := jsonRequest(t, http.MethodPost, s.server.URL+"/submit/", body, clientIP)
	res := doRequest(t, req)

	assert.Equal(t, http.StatusTooManyRequests, res.code, "unexpected status: %s", res.body)
}

func (s *ServerTestSuite) Test_Check() {
	t := s.T()

	seedSubmission(t, s.tx, "23ucs300", types.DomainWebDevelopment)
	seedSubmission(t, s.tx, "23ucs300", types.DomainCreative)

	tests := []struct {
		name           string
		rollNumber     string
		bodyTester     func(t *testing.T, body map[string]any)
		expectedStatus int
	}{
		{
			name:           "KnownRoll",
			rollNumber:     "23ucs300",
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["success"], "expected success")
				assert.EqualValues(t, 2, body["count"], "wrong count")
				assert.Len(t, body["domains"], 2, "wrong domains length")
			},
		},
		{
			name:           "KnownRollUppercase",
			rollNumber:     "23UCS300",
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.EqualValues(t, 2, body["count"], "wrong count")
			},
		},
		{
			name:           "UnknownRoll",
			rollNumber:     "23zzz999",
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.EqualValues(t, 0, body["count"], "wrong count")
			},
		},
		{
			name:           "MalformedRoll",
			rollNumber:     "nope",
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["message"], "valid roll number")
			},
		},
		{
			name:           "MissingRoll",
			rollNumber:     "",
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["message"], "Roll number is required")
			},
		},
	}

	for i, test := range tests {
		s.Run(test.name, func() {
			t := s.T()

			url := s.server.URL + "/submissions/check/?roll_number=" + test.rollNumber
			clientIP := fmt.Sprintf("10.3.0.%d", i+1)
			req := jsonRequest(t, http.MethodGet, url, nil, clientIP)
			res := doRequest(t, req)

			assert.Equal(t, test.expectedStatus, res.code, "unexpected status: %s", res.body)
			test.bodyTester(t, parseBody(t, res.body))
		})
	}
}
