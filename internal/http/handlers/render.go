package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"stockdesk/internal/views"
)

// NewEngine builds the template engine main and the handler tests share.
func NewEngine(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFunc("fmtMoney", func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	})
	engine.AddFunc("fmtDate", func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	})
	engine.AddFunc("mul", func(price float64, qty int) float64 {
		return price * float64(qty)
	})
	return engine
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Post-redirect-get notifications ride on query params.
	if msg := c.Query("msg"); msg != "" {
		data["Msg"] = msg
	}
	if _, ok := data["Err"]; !ok {
		if e := c.Query("err"); e != "" {
			data["Err"] = e
		}
	}
	return c.Render(tmpl, data)
}

func redirectMsg(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path + "?msg=" + url.QueryEscape(msg))
}

func redirectErr(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path + "?err=" + url.QueryEscape(msg))
}

// sortLinks builds one header link per sortable field, preserving the rest
// of the query string and applying the toggle/reset rule.
func sortLinks(base string, params url.Values, curSort string, curDir views.SortDir, def views.SortDir, fields ...string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		field, dir := views.NextSort(curSort, curDir, f, def)
		q := url.Values{}
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		q.Set("sort", field)
		q.Set("dir", string(dir))
		out[f] = base + "?" + q.Encode()
	}
	return out
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// formValues collects repeated form fields (table rows) in order.
func formValues(c *fiber.Ctx, key string) []string {
	raw := c.Request().PostArgs().PeekMulti(key)
	out := make([]string, 0, len(raw))
	for _, b := range raw {
		out = append(out, string(b))
	}
	return out
}
