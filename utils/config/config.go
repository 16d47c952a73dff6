package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Postgres connection parts, used when db.postgres.dsn is not set
type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// func to build a postgres url from its parts
func BuildPostgresDSN(p Postgres) string {
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     host + ":" + port,
		Path:     "/" + p.Name,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	if p.User != "" {
		if p.Password != "" {
			u.User = url.UserPassword(p.User, p.Password)
		} else {
			u.User = url.User(p.User)
		}
	}

	return u.String()
}

// func to parse address
func ParseAddress(raw string) (hostname, port string) {
	if i := strings.LastIndex(raw, ":"); i >= 0 {
		return raw[:i], raw[i+1:]
	}

	return raw, ""
}

// JoinAddress is the inverse of ParseAddress; a bare port yields ":port"
func JoinAddress(hostname, port string) string {
	return fmt.Sprintf("%s:%s", hostname, port)
}
