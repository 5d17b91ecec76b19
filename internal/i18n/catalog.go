// Package i18n holds the interface message catalog and browser language
// negotiation.
package i18n

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// available lists every locale the catalog carries translations for.
var available = map[string]func() locales.Translator{
	"en": en.New,
	"ru": ru.New,
}

// Catalog translates interface messages into the supported languages.
type Catalog struct {
	uni         *ut.UniversalTranslator
	supported   []string
	defaultLang string
	matcher     language.Matcher
}

// NewCatalog builds a catalog for the supported languages. The default
// language must be one of them.
func NewCatalog(defaultLang string, supported []string) (*Catalog, error) {
	if len(supported) == 0 {
		return nil, fmt.Errorf("no supported languages configured")
	}

	translators := make([]locales.Translator, 0, len(supported))
	tags := make([]language.Tag, 0, len(supported))
	for _, lang := range supported {
		newTranslator, ok := available[lang]
		if !ok {
			return nil, fmt.Errorf("no translations for language %q", lang)
		}
		translators = append(translators, newTranslator())
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid language tag %q: %w", lang, err)
		}
		tags = append(tags, tag)
	}

	c := &Catalog{
		uni:         ut.New(translators[0], translators...),
		supported:   append([]string(nil), supported...),
		defaultLang: defaultLang,
		matcher:     language.NewMatcher(tags),
	}
	if !c.IsSupported(defaultLang) {
		return nil, fmt.Errorf("default language %q is not supported", defaultLang)
	}

	for _, lang := range supported {
		trans, _ := c.uni.GetTranslator(lang)
		for key, text := range messages[lang] {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("failed to add %s message %q: %w", lang, key, err)
			}
		}
	}

	return c, nil
}

// Supported returns the supported languages in configuration order.
func (c *Catalog) Supported() []string {
	return append([]string(nil), c.supported...)
}

// IsSupported reports whether lang is a supported language code.
func (c *Catalog) IsSupported(lang string) bool {
	for _, l := range c.supported {
		if l == lang {
			return true
		}
	}
	return false
}

// Negotiate picks the best supported language for an Accept-Language header.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return c.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.defaultLang
	}
	_, index, confidence := c.matcher.Match(tags...)
	if confidence == language.No {
		return c.defaultLang
	}
	return c.supported[index]
}

// T translates key into lang. Params replace {0}, {1}, ... placeholders.
// Unknown keys are returned unchanged.
func (c *Catalog) T(lang, key string, params ...string) string {
	trans, found := c.uni.GetTranslator(lang)
	if !found {
		trans, _ = c.uni.GetTranslator(c.defaultLang)
	}
	text, err := trans.T(key, params...)
	if err != nil {
		log.Printf("missing %s translation for %q", trans.Locale(), key)
		return key
	}
	return text
}
