// Package loader reads MO service-schema XML documents into the spec model.
// It owns all structural validation: the renderer downstream trusts the tree
// it gets. Numeric attributes are range-checked on conversion and all names
// and comments are NFC-normalized so rendered output is byte-stable across
// differently encoded inputs.
//
// Назначение: XML → spec.Specification, включая проверки структуры.
// Не делает: семантической валидации ссылок, рендеринга, записи файлов.
// Зависимости: beevik/etree, fortio.org/safecast, golang.org/x/text.
package loader
