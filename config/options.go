package config

// Default option lists for the profile comboboxes. Deployments override them
// via the VALID_* environment variables; the lists are copied on read so the
// validation layer never shares mutable state with callers.

var DefaultLanguages = []string{
	"English",
	"Punjabi",
	"Dutch",
	"French",
	"Spanish",
	"Mandarin Chinese",
	"Gujarati",
	"Hindi",
	"Russian",
	"Turkish",
	"Azerbaijani",
	"Polish",
	"German",
	"Greek",
}

var DefaultServices = []string{
	"Theme development",
	"App development",
	"Migrations",
	"Design",
	"SEO",
	"Email marketing",
	"Ads",
	"POS support",
	"Copywriting",
	"Headless development",
	"User Experience (UX)",
	"Conversion Rate Optimization (CRO)",
	"Consulting",
	"Checkout Extensions",
	"Speed Optimization",
	"Shipping and logistics",
	"DNS and email",
}

var DefaultTechnologies = []string{
	"Frontend development (HTML, CSS, and Javascript)",
	"Backend development",
	"React",
	"Vue",
	"Tailwind CSS",
	"Python",
	"PHP",
	"Rust",
	"Typescript",
	"Postgres",
	"MongoDB",
	"MySQL",
	"Polaris",
	"AWS",
	"Firebase",
}

var DefaultIndustries = []string{
	"Arts and crafts",
	"Baby and kids",
	"Books, music, and video",
	"Business equipment and supplies",
	"Clothing",
	"Electronics",
	"Food and drink",
	"Hardware and automotive",
	"Health and beauty",
	"Home and decor",
	"Jewelry and accessories",
	"Outdoor and garden",
	"Pet supplies",
	"Restaurants",
	"Services",
	"Sports and recreation",
	"Toys and games",
	"Music",
	"Sewing Machines",
	"Running/ Fitness",
}
