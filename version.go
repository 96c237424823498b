package xdmfgo

// Version is the library version recorded in every written document.
const Version = "0.1.0"
