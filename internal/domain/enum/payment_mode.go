package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMode represents how a receipt or refund was paid
type PaymentMode string

const (
	PaymentModeCash       PaymentMode = "Cash"
	PaymentModeUPI        PaymentMode = "UPI"
	PaymentModeUPIPhonePe PaymentMode = "UPI-PhonePe"
	PaymentModeUPIGPay    PaymentMode = "UPI-GPay"
	PaymentModeUPIPaytm   PaymentMode = "UPI-Paytm"
	PaymentModeUPIOther   PaymentMode = "UPI-Other"
	PaymentModeCard       PaymentMode = "Card"
	PaymentModeBank       PaymentMode = "Bank"
)

// DigitalModes lists the modes settled through UPI settlement batches.
func DigitalModes() []PaymentMode {
	return []PaymentMode{
		PaymentModeUPI,
		PaymentModeUPIPhonePe,
		PaymentModeUPIGPay,
		PaymentModeUPIPaytm,
		PaymentModeUPIOther,
	}
}

// IsValid reports whether the mode is one of the known payment modes
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeUPIPhonePe,
		PaymentModeUPIGPay, PaymentModeUPIPaytm, PaymentModeUPIOther,
		PaymentModeCard, PaymentModeBank:
		return true
	}
	return false
}

func (m PaymentMode) String() string {
	return string(m)
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMode(str)
	return nil
}

func (m PaymentMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentModeCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMode(v)
	case []byte:
		*m = PaymentMode(string(v))
	}
	return nil
}
