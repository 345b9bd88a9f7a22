package cms

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// FAQItem is one question of the FAQ accordion.
type FAQItem struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Card is a titled blurb used by the home page sections.
type Card struct {
	Title     string `yaml:"title"`
	Text      string `yaml:"text"`
	Image     string `yaml:"image"`
	StatLabel string `yaml:"stat_label"`
	StatValue string `yaml:"stat_value"`
}

// ContactDetails are the public contact channels.
type ContactDetails struct {
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

// TelHref returns a tel: URI with formatting removed.
func (c ContactDetails) TelHref() string {
	return "tel:" + strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(c.Phone)
}

// HomeContent is the copy shown around the catalogs on the home page.
type HomeContent struct {
	Values  []Card         `yaml:"values"`
	Process []Card         `yaml:"process"`
	Mission Card           `yaml:"mission"`
	Vision  Card           `yaml:"vision"`
	Why     []Card         `yaml:"why"`
	Contact ContactDetails `yaml:"contact"`
}

// FAQ returns the question list in file order.
func (c *Client) FAQ() ([]FAQItem, error) {
	var items []FAQItem
	if err := c.decodeYAML("faq.yaml", &items); err != nil {
		return nil, err
	}
	for i, it := range items {
		if strings.TrimSpace(it.Question) == "" || strings.TrimSpace(it.Answer) == "" {
			return nil, fmt.Errorf("cms: faq item %d: question and answer are required", i)
		}
	}
	return items, nil
}

// Home returns the home page copy.
func (c *Client) Home() (HomeContent, error) {
	var home HomeContent
	if err := c.decodeYAML("home.yaml", &home); err != nil {
		return HomeContent{}, err
	}
	return home, nil
}

func (c *Client) decodeYAML(name string, out any) error {
	raw, err := c.readFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("cms: decode %s: %w", name, err)
	}
	return nil
}
