// Package people is the HTTP client for the people listing endpoint
// (dummyjson.com/users by default). It decodes the response and nothing more;
// mapping into display records lives in package roster.
package people
