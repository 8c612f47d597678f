package repository

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Driver names accepted by Open.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
)

// DSNConfig holds the connection settings used to build a driver DSN.
type DSNConfig struct {
	Driver         string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// BuildDSN renders c for its driver.
func BuildDSN(c DSNConfig) (string, error) {
	addr := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	switch c.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = addr
		mc.DBName = c.Name
		mc.ParseTime = true
		mc.Timeout = c.ConnectTimeout
		mc.ReadTimeout = c.ReadTimeout
		mc.WriteTimeout = c.WriteTimeout
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN(), nil
	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   addr,
			Path:   "/" + c.Name,
		}
		q := url.Values{}
		if c.ConnectTimeout > 0 {
			q.Set("connect_timeout", strconv.Itoa(int(c.ConnectTimeout/time.Second)))
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	default:
		return "", fmt.Errorf("%w: unsupported driver %q", ErrOpen, c.Driver)
	}
}
