package payload

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxTextLength = 2000

// builders maps each payload kind to its wire-format constructor.
var builders = map[Kind]func(Fields) (string, error){
	KindURL:      buildURL,
	KindText:     buildText,
	KindEmail:    buildEmail,
	KindSMS:      buildSMS,
	KindPhone:    buildPhone,
	KindWiFi:     buildWiFi,
	KindVCard:    buildVCard,
	KindUPI:      buildUPI,
	KindLocation: buildLocation,
	KindWhatsApp: buildWhatsApp,
	KindEvent:    buildEvent,
}

// required builds the error for an absent required field, with an example
// so the caller can correct the request.
func required(field, example string) error {
	return &ValidationError{Field: field, Reason: "is required, e.g. " + example}
}

func buildURL(f Fields) (string, error) {
	u := f.Get("url")
	if u == "" {
		return "", required("url", "url=https://example.com")
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return "", &ValidationError{Field: "url", Reason: "must start with http:// or https://"}
	}
	return u, nil
}

func buildText(f Fields) (string, error) {
	t := f.Get("text")
	if t == "" {
		return "", required("text", "text=hello")
	}
	if strings.TrimSpace(t) == "" {
		return "", &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(t) > maxTextLength {
		return "", &ValidationError{Field: "text", Reason: fmt.Sprintf("must be at most %d characters", maxTextLength)}
	}
	return t, nil
}

func buildEmail(f Fields) (string, error) {
	to := f.Get("to")
	if to == "" {
		return "", required("to", "to=user@example.com")
	}
	if !strings.Contains(to, "@") {
		return "", &ValidationError{Field: "to", Reason: "must be a valid email address"}
	}
	var params []string
	if subject := f.Get("subject"); subject != "" {
		params = append(params, "subject="+encodeComponent(subject))
	}
	if body := f.Get("body"); body != "" {
		params = append(params, "body="+encodeComponent(body))
	}
	out := "mailto:" + to
	if len(params) > 0 {
		out += "?" + strings.Join(params, "&")
	}
	return out, nil
}

func buildSMS(f Fields) (string, error) {
	phone := f.Get("phone")
	if phone == "" {
		return "", required("phone", "phone=+14155550123")
	}
	out := "sms:" + phone
	if msg := f.Get("message"); msg != "" {
		out += "?body=" + encodeComponent(msg)
	}
	return out, nil
}

func buildPhone(f Fields) (string, error) {
	phone := f.Get("phone")
	if phone == "" {
		return "", required("phone", "phone=+14155550123")
	}
	return "tel:" + phone, nil
}

func buildWiFi(f Fields) (string, error) {
	ssid := f.Get("ssid")
	if ssid == "" {
		return "", required("ssid", "ssid=MyNetwork")
	}
	enc := strings.ToUpper(f.Get("encryption"))
	switch enc {
	case "WPA", "WEP", "NOPASS":
	default:
		enc = "WPA"
	}
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;H:%t;", enc, ssid, f.Get("password"), f.Bool("hidden")), nil
}

func buildVCard(f Fields) (string, error) {
	name := f.Get("name")
	if name == "" {
		return "", required("name", "name=John Doe")
	}

	// N holds the name tokens in reversed order: "John M Doe" -> "Doe;M;John".
	tokens := strings.Fields(name)
	reversed := make([]string, len(tokens))
	for i, t := range tokens {
		reversed[len(tokens)-1-i] = t
	}

	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + name,
		"N:" + strings.Join(reversed, ";"),
	}
	optional := []struct {
		field string
		prop  string
	}{
		{"phone", "TEL"},
		{"email", "EMAIL"},
		{"org", "ORG"},
		{"title", "TITLE"},
		{"url", "URL"},
		{"address", "ADR"},
		{"note", "NOTE"},
	}
	for _, o := range optional {
		if v := f.Get(o.field); v != "" {
			lines = append(lines, o.prop+":"+v)
		}
	}
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\n"), nil
}

func buildUPI(f Fields) (string, error) {
	vpa := f.Get("vpa")
	if vpa == "" {
		return "", required("vpa", "vpa=merchant@upi")
	}
	if !strings.Contains(vpa, "@") {
		return "", &ValidationError{Field: "vpa", Reason: "must be a valid virtual payment address"}
	}
	params := []string{"pa=" + vpa}
	if name := f.Get("name"); name != "" {
		params = append(params, "pn="+encodeComponent(name))
	}
	if amount := f.Get("amount"); amount != "" {
		params = append(params, "am="+amount)
	}
	// currency is pass-through, INR when absent
	currency := f.Get("currency")
	if currency == "" {
		currency = "INR"
	}
	params = append(params, "cu="+currency)
	if note := f.Get("note"); note != "" {
		params = append(params, "tn="+encodeComponent(note))
	}
	return "upi://pay?" + strings.Join(params, "&"), nil
}

func buildLocation(f Fields) (string, error) {
	latStr := f.Get("lat")
	if latStr == "" {
		return "", required("lat", "lat=28.6139")
	}
	lngStr := f.Get("lng")
	if lngStr == "" {
		return "", required("lng", "lng=77.2090")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return "", &ValidationError{Field: "lat", Reason: "must be a number"}
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return "", &ValidationError{Field: "lng", Reason: "must be a number"}
	}
	if lat < -90 || lat > 90 {
		return "", &ValidationError{Field: "lat", Reason: "must be between -90 and 90"}
	}
	if lng < -180 || lng > 180 {
		return "", &ValidationError{Field: "lng", Reason: "must be between -180 and 180"}
	}
	latOut := strconv.FormatFloat(lat, 'f', -1, 64)
	lngOut := strconv.FormatFloat(lng, 'f', -1, 64)
	if label := f.Get("label"); label != "" {
		return "https://maps.google.com?q=" + latOut + "," + lngOut + "&label=" + encodeComponent(label), nil
	}
	return "geo:" + latOut + "," + lngOut, nil
}

func buildWhatsApp(f Fields) (string, error) {
	phone := f.Get("phone")
	if phone == "" {
		return "", required("phone", "phone=+14155550123")
	}
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	out := "https://wa.me/" + digits.String()
	if msg := f.Get("message"); msg != "" {
		out += "?text=" + encodeComponent(msg)
	}
	return out, nil
}

func buildEvent(f Fields) (string, error) {
	title := f.Get("title")
	if title == "" {
		return "", required("title", "title=Team standup")
	}
	start := f.Get("start")
	if start == "" {
		return "", required("start", "start=20260115T100000Z")
	}
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"SUMMARY:" + title,
		"DTSTART:" + start,
	}
	if end := f.Get("end"); end != "" {
		lines = append(lines, "DTEND:"+end)
	}
	if location := f.Get("location"); location != "" {
		lines = append(lines, "LOCATION:"+location)
	}
	if description := f.Get("description"); description != "" {
		lines = append(lines, "DESCRIPTION:"+description)
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR")
	return strings.Join(lines, "\n"), nil
}

// encodeComponent percent-encodes a query value, with spaces as %20 so the
// result is valid inside mailto:, sms: and wa.me URIs.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
