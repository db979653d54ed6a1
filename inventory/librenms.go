package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nanoncore/nano-telemetry/config"
	"github.com/nanoncore/nano-telemetry/types"
)

const (
	librenmsDevicesPath = "/api/v0/devices"
	librenmsTokenHeader = "X-Auth-Token"
	librenmsStatusOK    = "ok"

	// MetaLibreNMSHostname keeps the name the device is registered under
	MetaLibreNMSHostname = "librenms_hostname"
)

// LibreNMS lists the devices that are up in a LibreNMS instance. The vendor
// of a device is derived from its icon; devices with an unmapped icon are
// left out.
type LibreNMS struct {
	baseURL string
	token   string
	limit   int
	icons   map[string]string
	client  *http.Client
}

type librenmsDevice struct {
	DeviceID int64  `json:"device_id"`
	Hostname string `json:"hostname"`
	SysName  string `json:"sysName"`
	IP       string `json:"ip"`
	OS       string `json:"os"`
	Hardware string `json:"hardware"`
	Icon     string `json:"icon"`
}

type librenmsResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Devices []librenmsDevice `json:"devices"`
}

func NewLibreNMS(cfg config.LibreNMSConfig, icons map[string]string) *LibreNMS {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &LibreNMS{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		limit:   cfg.Limit,
		icons:   icons,
		client:  &http.Client{Timeout: timeout},
	}
}

func (l *LibreNMS) endpoint() string {
	query := url.Values{}
	query.Set("type", "up")
	if l.limit > 0 {
		query.Set("limit", strconv.Itoa(l.limit))
	}
	return l.baseURL + librenmsDevicesPath + "?" + query.Encode()
}

func (l *LibreNMS) Devices(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("build librenms request: %w", err)
	}
	req.Header.Set(librenmsTokenHeader, l.token)
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("librenms devices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("librenms devices: unexpected status %s", resp.Status)
	}

	var body librenmsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode librenms devices: %w", err)
	}
	if body.Status != librenmsStatusOK {
		return nil, fmt.Errorf("librenms devices: status %q: %s", body.Status, body.Message)
	}

	entries := make([]Entry, 0, len(body.Devices))
	for _, d := range body.Devices {
		vendor, ok := l.icons[d.Icon]
		if !ok {
			continue
		}
		entries = append(entries, d.entry(types.Vendor(vendor)))
	}
	return entries, nil
}

func (d librenmsDevice) entry(vendor types.Vendor) Entry {
	e := Entry{
		InventoryID: strconv.FormatInt(d.DeviceID, 10),
		Hostname:    d.SysName,
		Address:     d.IP,
		Vendor:      vendor,
		Platform:    d.OS,
	}
	if e.Hostname == "" {
		e.Hostname = d.Hostname
	}
	if e.Address == "" {
		e.Address = d.Hostname
	}
	e.setMeta(MetaLibreNMSHostname, d.Hostname)
	e.setMeta("hardware", d.Hardware)
	return e
}
