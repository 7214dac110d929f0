// internal/assistant/knowledge.go
package assistant

import (
	"sort"
	"strings"
)

// Article is a canned help answer.
type Article struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Keywords   []string `json:"keywords"`
	Popularity int      `json:"popularity"`
}

// Match is an article ranked against a query.
type Match struct {
	Article
	Relevance float64 `json:"relevance"`
}

const maxSearchResults = 5

// KnowledgeBase is a static, in-memory article set.
type KnowledgeBase struct {
	articles []Article
	byID     map[string]Article
}

func NewKnowledgeBase(articles []Article) *KnowledgeBase {
	kb := &KnowledgeBase{articles: articles, byID: make(map[string]Article, len(articles))}
	for _, a := range articles {
		kb.byID[a.ID] = a
	}
	return kb
}

// DefaultKnowledgeBase returns the enrollment help articles.
func DefaultKnowledgeBase() *KnowledgeBase {
	return NewKnowledgeBase(defaultArticles)
}

// Article returns the article with id.
func (kb *KnowledgeBase) Article(id string) (Article, bool) {
	a, ok := kb.byID[id]
	return a, ok
}

func (kb *KnowledgeBase) Len() int { return len(kb.articles) }

// Search returns up to five articles relevant to query, best first.
//
// An article is a candidate when one of its keywords occurs in the query or
// the whole query occurs in its title or content. Relevance is ten points per
// keyword hit, five when the title contains the query, plus popularity/20.
func (kb *KnowledgeBase) Search(query string) []Match {
	q := strings.ToLower(query)

	var matches []Match
	for _, a := range kb.articles {
		hits := 0
		for _, kw := range a.Keywords {
			if strings.Contains(q, kw) {
				hits++
			}
		}
		inTitle := strings.Contains(strings.ToLower(a.Title), q)
		if hits == 0 && !inTitle && !strings.Contains(strings.ToLower(a.Content), q) {
			continue
		}

		relevance := float64(hits*10) + float64(a.Popularity)/20
		if inTitle {
			relevance += 5
		}
		matches = append(matches, Match{Article: a, Relevance: relevance})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Relevance > matches[j].Relevance })
	if len(matches) > maxSearchResults {
		matches = matches[:maxSearchResults]
	}
	return matches
}

var defaultArticles = []Article{
	{
		ID:         "kb001",
		Category:   "process",
		Title:      "How long does enrollment take?",
		Content:    "The enrollment process takes 3-5 minutes to complete. You'll provide basic information in step 1 (1 minute), identity verification in step 2 (2 minutes), and review your information in step 3 (1 minute). After submission, your credit report is generated instantly.",
		Keywords:   []string{"time", "long", "duration", "how much time", "minutes"},
		Popularity: 95,
	},
	{
		ID:         "kb002",
		Category:   "process",
		Title:      "What happens after I submit?",
		Content:    "After submission: (1) Your credit report is generated instantly, (2) We email you a copy and portal access, (3) Our team reviews your report, (4) We contact you within 24 hours to schedule a free consultation, (5) We create a personalized credit repair plan.",
		Keywords:   []string{"after", "submit", "next", "then", "what happens"},
		Popularity: 90,
	},
	{
		ID:         "kb003",
		Category:   "process",
		Title:      "What is IDIQ?",
		Content:    "IDIQ is a certified credit reporting partner that works with all three major credit bureaus (Equifax, Experian, TransUnion). They've been in business for over 20 years, process millions of reports annually, and provide the official 3-bureau credit reports used by credit repair professionals.",
		Keywords:   []string{"idiq", "what is", "credit bureau", "who"},
		Popularity: 88,
	},
	{
		ID:         "kb101",
		Category:   "security",
		Title:      "How is my data protected?",
		Content:    "Your security is our top priority. We use: (1) 256-bit bank-level encryption, (2) Secure SSL connection, (3) IDIQ's certified secure platform, (4) Federal compliance (FCRA, GLBA), (5) Zero data sharing without permission. Your information is encrypted in transit and at rest.",
		Keywords:   []string{"secure", "safe", "protect", "encryption", "security"},
		Popularity: 92,
	},
	{
		ID:         "kb102",
		Category:   "security",
		Title:      "Why do you need my SSN?",
		Content:    "Your SSN is required to pull your official credit report from the credit bureaus. It's the only way to verify your identity and retrieve your actual credit data. Your SSN is: (1) Encrypted immediately, (2) Never stored in plain text, (3) Transmitted securely to IDIQ, (4) Protected by federal law.",
		Keywords:   []string{"ssn", "social security", "why need", "sensitive"},
		Popularity: 94,
	},
	{
		ID:         "kb103",
		Category:   "security",
		Title:      "Is this a scam?",
		Content:    "No, this is 100% legitimate. Speedy Credit Repair is a licensed credit repair company with 30+ years in business. We're: (1) Better Business Bureau accredited, (2) Fully licensed and bonded, (3) Compliant with federal law, (4) Have thousands of satisfied customers. You can verify our credentials anytime.",
		Keywords:   []string{"scam", "legit", "legitimate", "trust", "real"},
		Popularity: 85,
	},
	{
		ID:         "kb201",
		Category:   "credit_impact",
		Title:      "Will this hurt my credit score?",
		Content:    "No! This is a \"soft pull\" (soft inquiry) which does NOT affect your credit score. It's exactly like checking your own credit. Only \"hard inquiries\" (when you apply for new credit) affect your score. Soft pulls are invisible to lenders and have zero impact on your creditworthiness.",
		Keywords:   []string{"affect", "hurt", "damage", "impact", "credit score", "harm"},
		Popularity: 96,
	},
	{
		ID:         "kb202",
		Category:   "credit_impact",
		Title:      "What is a soft pull vs hard pull?",
		Content:    "Soft Pull: Used for background checks, pre-approvals, personal credit checks. Does NOT affect your score. Not visible to lenders. Hard Pull: Used when you apply for credit (loan, credit card, mortgage). CAN lower your score by 5-10 points. Visible to lenders for 2 years. This is a soft pull.",
		Keywords:   []string{"soft pull", "hard pull", "inquiry", "difference"},
		Popularity: 82,
	},
	{
		ID:         "kb301",
		Category:   "pricing",
		Title:      "How much does this cost?",
		Content:    "The credit report is 100% FREE - no credit card required. Seriously. We want you to see what's on your report so you can make informed decisions. If you decide you want our help with credit repair, that's a separate service with transparent pricing. But this report? Totally free.",
		Keywords:   []string{"cost", "price", "fee", "charge", "money", "free", "how much"},
		Popularity: 93,
	},
	{
		ID:         "kb302",
		Category:   "pricing",
		Title:      "Why is the credit report free?",
		Content:    "We offer free credit reports because: (1) We want to help people understand their credit, (2) It builds trust before you decide if you need our services, (3) Many people don't know what's on their report, (4) Education is the first step to better credit. No tricks, no hidden fees.",
		Keywords:   []string{"why free", "catch", "hidden fee", "trick"},
		Popularity: 78,
	},
	{
		ID:         "kb401",
		Category:   "technical",
		Title:      "What information do I need to provide?",
		Content:    "You'll need: Step 1 - Name, email, phone (1 min). Step 2 - Address, date of birth, SSN (2 min). Step 3 - Review and agree to terms (1 min). All information is standard for credit report requests and required by federal law.",
		Keywords:   []string{"need", "required", "information", "provide", "what"},
		Popularity: 80,
	},
	{
		ID:         "kb402",
		Category:   "technical",
		Title:      "Can I save and come back later?",
		Content:    "Yes! Your progress is automatically saved. You can close the form and return anytime to continue where you left off. Just use the same email address when you return and we'll restore your information.",
		Keywords:   []string{"save", "later", "come back", "resume", "continue"},
		Popularity: 65,
	},
}
