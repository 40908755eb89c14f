package audiohal

import "encoding/xml"

// The structs below are the configuration document's wire schema: a
// root <audiohal> element whose children may appear in any order
// except that <codec_probe>, when present, is resolved before the
// rest of the document is even looked at.

type xmlCtl struct {
	Name     string  `xml:"name,attr"`
	Val      string  `xml:"val,attr"`
	File     string  `xml:"file,attr"`
	Index    *int    `xml:"index,attr"`
	Function string  `xml:"function,attr"`
	Min      *string `xml:"min,attr"`
	Max      *string `xml:"max,attr"`
}

type xmlPath struct {
	Name string   `xml:"name,attr"`
	Ctls []xmlCtl `xml:"ctl"`
}

type xmlDevice struct {
	Name  string    `xml:"name,attr"`
	Paths []xmlPath `xml:"path"`
}

type xmlSet struct {
	Name string `xml:"name,attr"`
	Val  string `xml:"val,attr"`
}

type xmlEnable struct {
	Path string `xml:"path,attr"`
}

type xmlDisable struct {
	Path string `xml:"path,attr"`
}

type xmlCase struct {
	Name string   `xml:"name,attr"`
	File string   `xml:"file,attr"` // codec_probe case target
	Ctls []xmlCtl `xml:"ctl"`       // usecase case body
}

type xmlUsecase struct {
	Name  string    `xml:"name,attr"`
	Cases []xmlCase `xml:"case"`
}

type xmlStream struct {
	Name        string  `xml:"name,attr"`
	Type        string  `xml:"type,attr"`
	Dir         string  `xml:"dir,attr"`
	Card        *int    `xml:"card,attr"`
	DeviceNum   *int    `xml:"device,attr"`
	Rate        *int    `xml:"rate,attr"`
	PeriodSize  *int    `xml:"period_size,attr"`
	PeriodCount *int    `xml:"period_count,attr"`
	Instances   *int    `xml:"instances,attr"`
	Sets        []xmlSet     `xml:"set"`
	Enable      *xmlEnable   `xml:"enable"`
	Disable     *xmlDisable  `xml:"disable"`
	VolCtls     []xmlCtl     `xml:"ctl"`
	Usecases    []xmlUsecase `xml:"usecase"`
}

type xmlPreInit struct {
	Ctls []xmlCtl `xml:"ctl"`
}

type xmlInit struct {
	Ctls []xmlCtl `xml:"ctl"`
}

type xmlMixer struct {
	Card    int         `xml:"card,attr"`
	PreInit *xmlPreInit `xml:"pre_init"`
	Init    *xmlInit    `xml:"init"`
}

type xmlCodecProbeCase struct {
	Name string `xml:"name,attr"`
	File string `xml:"file,attr"`
}

type xmlCodecProbe struct {
	File  string              `xml:"file,attr"`
	Cases []xmlCodecProbeCase `xml:"case"`
}

type xmlRoot struct {
	XMLName    xml.Name       `xml:"audiohal"`
	CodecProbe *xmlCodecProbe `xml:"codec_probe"`
	Mixer      xmlMixer       `xml:"mixer"`
	Devices    []xmlDevice    `xml:"device"`
	Streams    []xmlStream    `xml:"stream"`
}

func parseXML(data []byte) (*xmlRoot, error) {
	var root xmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}
