package types

// Domain is one of the fixed recruitment tracks a student can apply under.
type Domain string

const (
	DomainWebDevelopment         Domain = "web-development"
	DomainAIML                   Domain = "ai-ml"
	DomainGenerativeAI           Domain = "generative-ai"
	DomainCreative               Domain = "creative-domain"
	DomainCompetitiveProgramming Domain = "competitive-programming"
)

// Domains lists every valid recruitment track.
var Domains = []Domain{
	DomainWebDevelopment,
	DomainAIML,
	DomainGenerativeAI,
	DomainCreative,
	DomainCompetitiveProgramming,
}

// MaxDomainsPerSubmission bounds how many tracks one request may target.
var MaxDomainsPerSubmission = len(Domains)

// Project title stored for competitive-programming rows, where applicants
// provide coding profiles instead of a project.
const CompetitiveProgrammingTitle = "Competitive Programming Profile"

func (d Domain) Valid() bool {
	for _, known := range Domains {
		if d == known {
			return true
		}
	}
	return false
}

func (d Domain) String() string {
	return string(d)
}
