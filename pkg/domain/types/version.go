package types

// Version is the edge-matrix build version, overridden at link time
var Version = "dev"

// ServiceName is used in health responses and the User-Agent header
const ServiceName = "edge-matrix"
