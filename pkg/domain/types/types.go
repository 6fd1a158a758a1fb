package types

// ServiceName is the canonical name of this service
const ServiceName = "mtgdump"

// Version is the application version, overridable at build time via ldflags
var Version = "0.1.0"

// DefaultArchiveURL is the MTGJSON archive fetched when no URL is configured
const DefaultArchiveURL = "https://mtgjson.com/files/AllSets.json.tar.gz"
