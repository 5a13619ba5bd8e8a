package catalog

import (
	"strings"

	"github.com/bizmodel-ai/backend/internal/models"
)

type resourceKit struct {
	courses, tools, communities, books []models.Resource
}

var (
	redditEntrepreneur = models.Resource{Title: "r/Entrepreneur", URL: "https://www.reddit.com/r/Entrepreneur/", Description: "General discussion for people starting and running businesses"}
	indieHackers       = models.Resource{Title: "Indie Hackers", URL: "https://www.indiehackers.com/", Description: "Founders sharing revenue numbers and lessons from bootstrapped businesses"}
	canva              = models.Resource{Title: "Canva", URL: "https://www.canva.com/", Description: "Design tool for graphics, thumbnails and mockups"}
	notion             = models.Resource{Title: "Notion", URL: "https://www.notion.so/", Description: "Workspace for notes, checklists and client tracking"}
	googleAnalytics    = models.Resource{Title: "Google Analytics", URL: "https://analytics.google.com/", Description: "Traffic and conversion tracking"}
	hubspotAcademy     = models.Resource{Title: "HubSpot Academy", URL: "https://academy.hubspot.com/", Description: "Free courses on marketing, sales and customer service"}
	leanStartup        = models.Resource{Title: "The Lean Startup", URL: "https://theleanstartup.com/book", Description: "Eric Ries on testing ideas quickly with real customers"}
	hundredDollar      = models.Resource{Title: "The $100 Startup", URL: "https://100startup.com/", Description: "Chris Guillebeau on businesses started with little money"}
)

var resources = map[string]resourceKit{
	"content-creation-ugc": {
		courses:     []models.Resource{{Title: "YouTube Creator Academy", URL: "https://www.youtube.com/creators/", Description: "Official lessons on growing a channel and working with brands"}},
		tools:       []models.Resource{canva, {Title: "CapCut", URL: "https://www.capcut.com/", Description: "Short-form video editing"}},
		communities: []models.Resource{{Title: "r/UGCcreators", URL: "https://www.reddit.com/r/UGCcreators/", Description: "Rates, pitches and brand deals for UGC creators"}},
		books:       []models.Resource{{Title: "Show Your Work!", URL: "https://austinkleon.com/show-your-work/", Description: "Austin Kleon on building an audience by sharing your process"}},
	},
	"affiliate-marketing": {
		courses:     []models.Resource{{Title: "Google SEO Starter Guide", URL: "https://developers.google.com/search/docs/fundamentals/seo-starter-guide", Description: "Search basics straight from Google"}},
		tools:       []models.Resource{{Title: "Amazon Associates", URL: "https://affiliate-program.amazon.com/", Description: "The most common first affiliate program"}, googleAnalytics},
		communities: []models.Resource{{Title: "r/Affiliatemarketing", URL: "https://www.reddit.com/r/Affiliatemarketing/", Description: "Niche selection, traffic and program discussion"}},
		books:       []models.Resource{{Title: "Affiliate Marketing Guide (Ahrefs)", URL: "https://ahrefs.com/blog/affiliate-marketing/", Description: "Step-by-step guide to building an affiliate site"}},
	},
	"freelancing": {
		courses:     []models.Resource{hubspotAcademy},
		tools:       []models.Resource{{Title: "Upwork", URL: "https://www.upwork.com/", Description: "Marketplace for finding first clients"}, {Title: "Fiverr", URL: "https://www.fiverr.com/", Description: "Package-based freelance marketplace"}},
		communities: []models.Resource{{Title: "r/freelance", URL: "https://www.reddit.com/r/freelance/", Description: "Pricing, contracts and client management"}},
		books:       []models.Resource{{Title: "The Freelancer's Bible", URL: "https://www.workman.com/products/the-freelancers-bible", Description: "Sara Horowitz on running a freelance practice"}},
	},
	"e-commerce-dropshipping": {
		courses:     []models.Resource{{Title: "Shopify Learn", URL: "https://www.shopify.com/learn", Description: "Free courses on launching and marketing a store"}},
		tools:       []models.Resource{{Title: "Shopify", URL: "https://www.shopify.com/", Description: "Hosted storefront and checkout"}, googleAnalytics},
		communities: []models.Resource{{Title: "r/dropship", URL: "https://www.reddit.com/r/dropship/", Description: "Suppliers, ads and store reviews"}},
		books:       []models.Resource{hundredDollar},
	},
	"virtual-assistant": {
		courses:     []models.Resource{hubspotAcademy},
		tools:       []models.Resource{notion, {Title: "Calendly", URL: "https://calendly.com/", Description: "Scheduling for client calls"}},
		communities: []models.Resource{{Title: "r/VirtualAssistant", URL: "https://www.reddit.com/r/VirtualAssistant/", Description: "Finding clients and setting rates as a VA"}},
		books:       []models.Resource{{Title: "Getting Things Done", URL: "https://gettingthingsdone.com/", Description: "David Allen's system for managing work"}},
	},
	"online-coaching-consulting": {
		courses:     []models.Resource{hubspotAcademy},
		tools:       []models.Resource{{Title: "Calendly", URL: "https://calendly.com/", Description: "Booking pages for sessions"}, {Title: "Zoom", URL: "https://zoom.us/", Description: "Video calls with clients"}},
		communities: []models.Resource{redditEntrepreneur},
		books:       []models.Resource{{Title: "Million Dollar Consulting", URL: "https://www.alanweiss.com/", Description: "Alan Weiss on building a consulting practice"}},
	},
	"print-on-demand": {
		courses:     []models.Resource{{Title: "Printful Academy", URL: "https://www.printful.com/blog", Description: "Guides on designs, mockups and niches"}},
		tools:       []models.Resource{{Title: "Printful", URL: "https://www.printful.com/", Description: "Print and fulfilment on demand"}, canva},
		communities: []models.Resource{{Title: "r/printondemand", URL: "https://www.reddit.com/r/printondemand/", Description: "Design, platform and marketing discussion"}},
		books:       []models.Resource{hundredDollar},
	},
	"youtube-automation": {
		courses:     []models.Resource{{Title: "YouTube Creator Academy", URL: "https://www.youtube.com/creators/", Description: "Official lessons on channel growth"}},
		tools:       []models.Resource{{Title: "vidIQ", URL: "https://vidiq.com/", Description: "Keyword and competitor research for YouTube"}, canva},
		communities: []models.Resource{{Title: "r/NewTubers", URL: "https://www.reddit.com/r/NewTubers/", Description: "Feedback and growth tips for small channels"}},
		books:       []models.Resource{{Title: "YouTube Secrets", URL: "https://www.youtubesecretsbook.com/", Description: "Sean Cannell and Benji Travis on growing a channel"}},
	},
	"local-service-arbitrage": {
		courses:     []models.Resource{{Title: "Google Business Profile Help", URL: "https://support.google.com/business/", Description: "Setting up local listings"}},
		tools:       []models.Resource{{Title: "Google Business Profile", URL: "https://www.google.com/business/", Description: "Local search presence"}, {Title: "Jobber", URL: "https://getjobber.com/", Description: "Quoting, scheduling and invoicing for service work"}},
		communities: []models.Resource{{Title: "r/smallbusiness", URL: "https://www.reddit.com/r/smallbusiness/", Description: "Owners of local and service businesses"}},
		books:       []models.Resource{{Title: "The E-Myth Revisited", URL: "https://www.michaelegerber.com/e-myth-revisited", Description: "Michael Gerber on building a business that runs without you"}},
	},
	"app-saas-development": {
		courses:     []models.Resource{{Title: "Y Combinator Startup School", URL: "https://www.startupschool.org/", Description: "Free program on building and launching a startup"}},
		tools:       []models.Resource{{Title: "Stripe", URL: "https://stripe.com/", Description: "Subscription billing"}, {Title: "Vercel", URL: "https://vercel.com/", Description: "Hosting for web apps"}},
		communities: []models.Resource{indieHackers},
		books:       []models.Resource{leanStartup},
	},
	"high-ticket-sales": {
		courses:     []models.Resource{{Title: "HubSpot Sales Training", URL: "https://academy.hubspot.com/courses/sales", Description: "Inbound sales fundamentals"}},
		tools:       []models.Resource{{Title: "HubSpot CRM", URL: "https://www.hubspot.com/products/crm", Description: "Free pipeline and contact tracking"}, {Title: "Zoom", URL: "https://zoom.us/", Description: "Sales calls"}},
		communities: []models.Resource{{Title: "r/sales", URL: "https://www.reddit.com/r/sales/", Description: "Closers and SDRs trading techniques"}},
		books:       []models.Resource{{Title: "SPIN Selling", URL: "https://www.huthwaite.com/spin-selling", Description: "Neil Rackham on large-ticket sales conversations"}},
	},
}

var generic = resourceKit{
	courses:     []models.Resource{hubspotAcademy},
	tools:       []models.Resource{notion, canva},
	communities: []models.Resource{redditEntrepreneur, indieHackers},
	books:       []models.Resource{leanStartup, hundredDollar},
}

// Resources returns the learning kit for a business model. businessModel may
// be a catalog id or display name, matched case-insensitively. Unknown models
// get a general starter kit under the name they were asked for.
func Resources(businessModel string) models.BusinessResources {
	name := strings.TrimSpace(businessModel)
	kit := generic
	if p, ok := findPath(name); ok {
		name = p.Name
		if k, ok := resources[p.ID]; ok {
			kit = k
		}
	}

	return models.BusinessResources{
		BusinessModel: name,
		Courses:       clone(kit.courses),
		Tools:         clone(kit.tools),
		Communities:   clone(kit.communities),
		Books:         clone(kit.books),
	}
}

func findPath(s string) (models.BusinessPath, bool) {
	if p, ok := Lookup(strings.ToLower(s)); ok {
		return p, true
	}
	for _, p := range paths {
		if strings.EqualFold(p.Name, s) {
			return p, true
		}
	}
	return models.BusinessPath{}, false
}

func clone(rs []models.Resource) []models.Resource {
	out := make([]models.Resource, len(rs))
	copy(out, rs)
	return out
}
