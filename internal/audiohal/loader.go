package audiohal

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/haldev/audiohal/internal/mixer"
)

// maxProbeDepth bounds codec_probe redirection chains. A chain longer
// than this is almost certainly a cycle in a misconfigured document.
const maxProbeDepth = 16

// resolveRelative resolves path against baseDir following the rule a
// supplied path is used verbatim if absolute; leading whitespace is
// skipped before the absoluteness check, since some shipped documents
// pad attribute values with a leading space.
func resolveRelative(baseDir, p string) string {
	trimmed := strings.TrimLeft(p, " \t")
	if filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Join(baseDir, trimmed)
}

// Load reads the audiohal configuration document rooted at path,
// follows any codec_probe redirection chain, and builds the immutable
// Model against the supplied mixer. It does not run the pre_init/init
// control sequences; InitAudioConfig does. systemDefaultDir is used to resolve path itself when it
// is relative; every nested reference resolves against the directory
// of the document it appears in.
func Load(path, systemDefaultDir string, m mixer.Mixer) (*Model, error) {
	rootPath := resolveRelative(systemDefaultDir, path)

	root, dir, err := loadDocument(rootPath, 0)
	if err != nil {
		return nil, err
	}

	mdl, err := buildModel(root, dir, m)
	if err != nil {
		return nil, err
	}

	return mdl, nil
}

// loadDocument reads and parses the document at path, then follows any
// codec_probe redirection chain as an iterative loop bounded by
// maxProbeDepth rather than recursive parse invocations. It returns
// the final document along with the directory that document's own
// relative references resolve against.
func loadDocument(path string, startDepth int) (*xmlRoot, string, error) {
	for depth := startDepth; ; depth++ {
		if depth > maxProbeDepth {
			return nil, "", newErr(KindBadConfig, "codec_probe redirection exceeds depth %d at %q", maxProbeDepth, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", wrapErr(KindBadConfig, err, "reading configuration document %q", path)
		}
		root, err := parseXML(data)
		if err != nil {
			return nil, "", wrapErr(KindBadConfig, err, "parsing configuration document %q", path)
		}
		dir := filepath.Dir(path)

		if root.CodecProbe == nil {
			return root, dir, nil
		}
		target, ok := resolveCodecProbe(root.CodecProbe, dir)
		if !ok {
			return root, dir, nil
		}
		path = target
	}
}

// resolveCodecProbe reads the probe file named by cp.File, strips a
// single trailing newline, and compares the result against each
// case's name. It reports the redirect target and whether a redirect
// applies; an unreadable, empty, or non-matching probe file means the
// current document is used as-is.
func resolveCodecProbe(cp *xmlCodecProbe, dir string) (string, bool) {
	if cp.File == "" {
		return "", false
	}
	probePath := resolveRelative(dir, cp.File)
	data, err := os.ReadFile(probePath)
	if err != nil {
		return "", false
	}
	content := strings.TrimSuffix(string(data), "\n")
	if content == "" {
		return "", false
	}
	for _, c := range cp.Cases {
		if c.Name == content {
			return resolveRelative(dir, c.File), true
		}
	}
	return "", false
}

// buildModel walks the parsed document and produces an immutable
// Model, enforcing the load-time validation invariants: every <ctl>
// must resolve to a known control, every <device name> must be a
// recognized device or the reserved "global" pseudo-device, stream
// names must be unique, and a named stream must have type="hw".
func buildModel(root *xmlRoot, baseDir string, m mixer.Mixer) (*Model, error) {
	mdl := newModel()
	mdl.mixerCard = root.Mixer.Card

	for _, xd := range root.Devices {
		if xd.Name == mdl.global.name {
			for _, xp := range xd.Paths {
				if xp.Name == "" {
					return nil, newErr(KindBadConfig, "<device name=%q>: <path> missing required name attribute", xd.Name)
				}
				p, err := buildPath(xp, m, baseDir)
				if err != nil {
					return nil, err
				}
				mdl.global.paths[p.name] = p
			}
			continue
		}
		bit, ok := deviceBitByName(xd.Name)
		if !ok {
			return nil, newErr(KindBadConfig, "<device name=%q>: not a recognized device name", xd.Name)
		}
		d := &device{name: xd.Name, bit: bit, paths: make(map[string]*path)}
		for _, xp := range xd.Paths {
			if xp.Name == "" {
				return nil, newErr(KindBadConfig, "<device name=%q>: <path> missing required name attribute", xd.Name)
			}
			p, err := buildPath(xp, m, baseDir)
			if err != nil {
				return nil, err
			}
			d.paths[p.name] = p
		}
		if _, dup := mdl.devices[d.name]; dup {
			return nil, newErr(KindBadConfig, "device %q declared more than once", d.name)
		}
		mdl.devices[d.name] = d
	}

	if root.Mixer.PreInit != nil {
		p, err := buildPathFromCtls("pre_init", root.Mixer.PreInit.Ctls, m, baseDir)
		if err != nil {
			return nil, err
		}
		mdl.preInit = p
	}
	if root.Mixer.Init != nil {
		p, err := buildPathFromCtls("init", root.Mixer.Init.Ctls, m, baseDir)
		if err != nil {
			return nil, err
		}
		mdl.init = p
	}

	for _, xs := range root.Streams {
		sd, err := buildStreamDef(xs, m, baseDir)
		if err != nil {
			return nil, err
		}
		if sd.isNamed() {
			if sd.name == globalStreamName {
				return nil, newErr(KindBadConfig, "stream name %q is reserved", globalStreamName)
			}
			if _, dup := mdl.named[sd.name]; dup {
				return nil, newErr(KindBadConfig, "stream name %q declared more than once", sd.name)
			}
			mdl.named[sd.name] = sd
		} else {
			key := anonKey(sd.typ, sd.dir)
			mdl.anonStreams[key] = append(mdl.anonStreams[key], sd)
		}
	}

	return mdl, nil
}

func buildPath(xp xmlPath, m mixer.Mixer, baseDir string) (*path, error) {
	return buildPathFromCtls(xp.Name, xp.Ctls, m, baseDir)
}

func buildPathFromCtls(name string, xcs []xmlCtl, m mixer.Mixer, baseDir string) (*path, error) {
	p := &path{name: name}
	for _, xc := range xcs {
		a, err := parseCtlAction(xc, m, baseDir)
		if err != nil {
			return nil, err
		}
		p.actions = append(p.actions, a)
	}
	return p, nil
}

func buildStreamDef(xs xmlStream, m mixer.Mixer, baseDir string) (*streamDef, error) {
	if xs.Type == "" {
		return nil, newErr(KindBadConfig, "<stream name=%q>: missing required type attribute", xs.Name)
	}
	if xs.Name != "" && xs.Type != "hw" {
		return nil, newErr(KindBadConfig, "<stream name=%q>: a named stream must have type=\"hw\", got %q", xs.Name, xs.Type)
	}

	sd := &streamDef{
		name:      xs.Name,
		typ:       xs.Type,
		dir:       xs.Dir,
		card:      xs.Card,
		deviceNum: xs.DeviceNum,
		rate:      xs.Rate,
		periodSz:  xs.PeriodSize,
		periodCnt: xs.PeriodCount,
		constants: make(map[string]string),
	}
	if xs.Instances != nil {
		sd.instances = *xs.Instances
	}
	for _, s := range xs.Sets {
		sd.constants[s.Name] = s.Val
	}
	if xs.Enable != nil {
		sd.enablePathName = xs.Enable.Path
	}
	if xs.Disable != nil {
		sd.disablePathName = xs.Disable.Path
	}

	for _, xc := range xs.VolCtls {
		switch xc.Function {
		case "leftvol", "rightvol":
			vc, err := buildVolCtl(xc, m)
			if err != nil {
				return nil, err
			}
			if xc.Function == "leftvol" {
				sd.leftVol = vc
			} else {
				sd.rightVol = vc
			}
		}
	}

	if len(xs.Usecases) > 0 {
		sd.useCases = make(map[string]map[string]*useCase)
		for _, xu := range xs.Usecases {
			cases := make(map[string]*useCase)
			for _, xc := range xu.Cases {
				uc := &useCase{name: xc.Name}
				for _, xctl := range xc.Ctls {
					a, err := parseCtlAction(xctl, m, baseDir)
					if err != nil {
						return nil, err
					}
					uc.actions = append(uc.actions, a)
				}
				cases[uc.name] = uc
			}
			sd.useCases[xu.Name] = cases
		}
	}

	return sd, nil
}

func buildVolCtl(xc xmlCtl, m mixer.Mixer) (*volCtl, error) {
	if xc.Name == "" {
		return nil, newErr(KindBadConfig, "<ctl function=%q>: missing required name attribute", xc.Function)
	}
	if _, ok := m.ControlByName(xc.Name); !ok {
		return nil, newErr(KindBadConfig, "<ctl function=%q name=%q>: no such control in mixer", xc.Function, xc.Name)
	}
	vc := &volCtl{controlName: xc.Name}
	if xc.Index != nil {
		vc.hasIndex = true
		vc.index = *xc.Index
	}
	if xc.Min != nil {
		v, err := parseCtlInt(*xc.Min)
		if err != nil {
			return nil, newErr(KindBadConfig, "<ctl function=%q name=%q min=%q>: %v", xc.Function, xc.Name, *xc.Min, err)
		}
		vc.hasMin = true
		vc.min = v
	}
	if xc.Max != nil {
		v, err := parseCtlInt(*xc.Max)
		if err != nil {
			return nil, newErr(KindBadConfig, "<ctl function=%q name=%q max=%q>: %v", xc.Function, xc.Name, *xc.Max, err)
		}
		vc.hasMax = true
		vc.max = v
	}
	return vc, nil
}
