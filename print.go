package fprint

import (
	"bytes"
	"fmt"
	"reflect"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Type tells how a print stores its payload.
type Type int32

const (
	// TypeUndefined is the state of a freshly constructed print.
	TypeUndefined Type = iota
	// TypeRaw prints carry an opaque value only the producing driver
	// understands.
	TypeRaw
	// TypeNbis prints carry NIST xyt minutiae templates.
	TypeNbis
)

func (t Type) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeRaw:
		return "raw"
	case TypeNbis:
		return "nbis"
	}
	return "invalid"
}

// Print is one fingerprint enrollment record. It is bound to the
// driver and device that produced it, carries either NBIS minutiae
// templates or an opaque driver payload depending on its type, and a
// set of mutable metadata fields that describe the enrollment without
// taking part in print equality.
//
// A print starts out untyped; SetType fixes the type exactly once.
type Print struct {
	printType Type

	driver   string
	deviceID string

	deviceStored bool

	templates []*Template
	rawData   cbor.RawMessage

	image *Image

	finger      Finger
	username    string
	description string
	enrollDate  time.Time
}

// New creates an untyped print bound to the device identified by
// driver and deviceID.
func New(driver, deviceID string) *Print {
	return &Print{
		driver:   driver,
		deviceID: deviceID,
	}
}

// SetType fixes the payload type of the print. It can be called once;
// any later call returns ErrTypeAlreadySet. Setting TypeNbis
// initializes the template list.
func (p *Print) SetType(t Type) error {
	if p.printType != TypeUndefined {
		return ErrTypeAlreadySet
	}
	switch t {
	case TypeRaw:
	case TypeNbis:
		p.templates = []*Template{}
	default:
		return fmt.Errorf("cannot set print type to %v", t)
	}
	p.printType = t
	return nil
}

func (p *Print) Type() Type         { return p.printType }
func (p *Print) Driver() string     { return p.driver }
func (p *Print) DeviceID() string   { return p.deviceID }
func (p *Print) DeviceStored() bool { return p.deviceStored }

// Image returns the last image fed to AddFromImage, if any. Images
// are kept for debugging only and never serialized.
func (p *Print) Image() *Image { return p.image }

func (p *Print) Finger() Finger         { return p.finger }
func (p *Print) Username() string       { return p.username }
func (p *Print) Description() string    { return p.description }
func (p *Print) EnrollDate() time.Time  { return p.enrollDate }
func (p *Print) SetDeviceStored(s bool) { p.deviceStored = s }
func (p *Print) SetFinger(f Finger)     { p.finger = f }
func (p *Print) SetUsername(u string)   { p.username = u }
func (p *Print) SetDescription(d string) {
	p.description = d
}

// SetEnrollDate records the calendar day the print was enrolled on.
// Only the date part is kept. The zero time clears it.
func (p *Print) SetEnrollDate(t time.Time) {
	if t.IsZero() {
		p.enrollDate = time.Time{}
		return
	}
	y, m, d := t.Date()
	p.enrollDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Templates returns the xyt templates of an NBIS print in enrollment
// order. The returned slice is owned by the print.
func (p *Print) Templates() []*Template { return p.templates }

// RawData returns the opaque driver payload of a raw print, nil when
// none was set.
func (p *Print) RawData() cbor.RawMessage { return p.rawData }

// SetRawData attaches the driver payload of a raw print. v is any
// CBOR-encodable value; drivers usually pass []byte.
func (p *Print) SetRawData(v any) error {
	if p.printType != TypeRaw {
		return fmt.Errorf("%w: raw data needs a raw print", ErrWrongType)
	}
	data, err := encMode.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode raw data: %w", err)
	}
	p.rawData = data
	return nil
}

// AddFromImage converts the image's detected minutiae into a new
// template, appends it and retains the image in place of any previous
// one. The print must be NBIS typed and the image non-nil; an image
// without minutiae yields ErrNoMinutiae.
func (p *Print) AddFromImage(img *Image) error {
	if p.printType != TypeNbis || img == nil {
		return fmt.Errorf("%w: cannot add print data from image", ErrWrongType)
	}
	t, err := NewTemplate(img.Minutiae, img.Width, img.Height, img.Geometry)
	if err != nil {
		return err
	}
	p.templates = append(p.templates, t)
	p.image = img
	return nil
}

// AddPrint appends a copy of the single template held by other.
// Drivers use this to collect the samples of one enrollment into the
// print that gets stored. Both prints must be NBIS typed and other
// must hold exactly one template.
func (p *Print) AddPrint(other *Print) error {
	if p.printType != TypeNbis || other == nil || other.printType != TypeNbis {
		return fmt.Errorf("%w: only NBIS prints can be merged", ErrWrongType)
	}
	if len(other.templates) != 1 {
		return ErrNotSinglePrint
	}
	p.templates = append(p.templates, other.templates[0].Clone())
	return nil
}

// Compatible reports whether the print was produced by the given
// driver and device and can be used with it again.
func (p *Print) Compatible(driver, deviceID string) bool {
	return p.driver == driver && p.deviceID == deviceID
}

// Equal reports whether two prints carry the same payload from the
// same device. Type, driver and device id must all match, then the
// payload is compared: raw data by value, NBIS template lists pairwise
// in stored order. Metadata and the device-stored flag are ignored.
// Both prints must have their type set, otherwise ErrTypeNotSet.
func (p *Print) Equal(other *Print) (bool, error) {
	if p.printType == TypeUndefined || other.printType == TypeUndefined {
		return false, ErrTypeNotSet
	}
	if p.printType != other.printType || p.driver != other.driver || p.deviceID != other.deviceID {
		return false, nil
	}
	if p.printType == TypeRaw {
		return rawEqual(p.rawData, other.rawData), nil
	}
	if len(p.templates) != len(other.templates) {
		return false, nil
	}
	for i := range p.templates {
		if !p.templates[i].Equal(other.templates[i]) {
			return false, nil
		}
	}
	return true, nil
}

func (p *Print) String() string {
	return fmt.Sprintf("Print(%s/%s %s finger=%s user=%q)",
		p.driver, p.deviceID, p.printType, p.finger, p.username)
}

// rawEqual compares raw payloads by decoded value, so the same value
// is equal no matter where its bytes came from. An unset payload and
// an explicit null are the same thing.
func rawEqual(a, b cbor.RawMessage) bool {
	var av, bv any
	if err := decMode.Unmarshal(normalizeRaw(a), &av); err != nil {
		return bytes.Equal(a, b)
	}
	if err := decMode.Unmarshal(normalizeRaw(b), &bv); err != nil {
		return bytes.Equal(a, b)
	}
	return reflect.DeepEqual(av, bv)
}

func normalizeRaw(m cbor.RawMessage) []byte {
	if len(m) == 0 {
		return []byte{cborNull}
	}
	return m
}
