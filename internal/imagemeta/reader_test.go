package imagemeta

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/fieldkit/internal/nullable"
)

var _ = Describe("Reader", func() {
	var (
		reader *Reader
		path   string
	)

	BeforeEach(func() {
		reader = NewReader(quietLogger)
	})

	Describe("PropertyDictionary", func() {
		var (
			props Properties
			ok    bool
		)

		JustBeforeEach(func() {
			props, ok = reader.PropertyDictionary(path)
		})

		When("the image has GPS, TIFF and EXIF metadata", func() {
			BeforeEach(func() {
				exifIFD := []ifdEntry{rationalEntry(0x920A, [2]uint32{88, 10})}
				tiffData := buildTIFF(cameraEntries("DJI"), exifIFD, gpsEntries(10, "N", 20, "E"))
				path = writeFixture("full.jpg", buildJPEG(tiffData, nil))
			})

			It("merges all three dictionaries", func() {
				Expect(ok).To(BeTrue())
				Expect(props).To(HaveKeyWithValue("Make", "DJI"))
				Expect(props).To(HaveKeyWithValue("Model", "FC6310"))
				Expect(props).To(HaveKeyWithValue("Orientation", 1))
				Expect(props).To(HaveKeyWithValue(GPSLatitude, 10.0))
				Expect(props).To(HaveKeyWithValue(GPSLatitudeRef, "N"))
				Expect(props["FocalLength"]).To(BeNumerically("~", 8.8, 1e-9))
			})

			It("drops the IFD pointers", func() {
				Expect(props).NotTo(HaveKey("ExifIFDPointer"))
				Expect(props).NotTo(HaveKey("GPSInfoIFDPointer"))
				Expect(props).NotTo(HaveKey("InfoIFDPointer"))
			})
		})

		When("the image has no EXIF sub-directory", func() {
			BeforeEach(func() {
				tiffData := buildTIFF(cameraEntries("DJI"), nil, gpsEntries(10, "N", 20, "E"))
				path = writeFixture("noexif.jpg", buildJPEG(tiffData, nil))
			})

			It("treats EXIF as empty", func() {
				Expect(ok).To(BeTrue())
				Expect(props).To(HaveKeyWithValue("Make", "DJI"))
				Expect(props).NotTo(HaveKey("FocalLength"))
			})
		})

		When("the image has no GPS metadata", func() {
			BeforeEach(func() {
				tiffData := buildTIFF(cameraEntries("DJI"), nil, nil)
				path = writeFixture("nogps.jpg", buildJPEG(tiffData, nil))
			})

			It("returns no dictionary", func() {
				Expect(ok).To(BeFalse())
				Expect(props).To(BeNil())
			})
		})

		When("the same key is in the GPS and TIFF dictionaries", func() {
			BeforeEach(func() {
				tiffData := buildTIFF(cameraEntries("DJI"), nil, gpsEntries(10, "N", 20, "E"))
				packet := xmpPacket(`<exif:GPSMake>gps-make</exif:GPSMake>`)
				path = writeFixture("collision.jpg", buildJPEG(tiffData, packet))
			})

			It("keeps the GPS value", func() {
				Expect(ok).To(BeTrue())
				Expect(props).To(HaveKeyWithValue("Make", "gps-make"))
			})
		})

		When("the file is a bare TIFF", func() {
			BeforeEach(func() {
				path = writeFixture("scan.tif", buildTIFF(cameraEntries("Parrot"), nil, gpsEntries(1, "N", 2, "E")))
			})

			It("reads the directories directly", func() {
				Expect(ok).To(BeTrue())
				Expect(props).To(HaveKeyWithValue("Make", "Parrot"))
			})
		})

		When("the metadata only exists as XMP", func() {
			BeforeEach(func() {
				packet := xmpPacket(`<tiff:Make>Sequoia</tiff:Make>
    <exif:GPSLatitude>45,30.5N</exif:GPSLatitude>
    <exif:GPSLongitude>122,40,30W</exif:GPSLongitude>`)
				path = writeFixture("xmponly.jpg", buildJPEG(nil, packet))
			})

			It("builds the dictionaries from XMP", func() {
				Expect(ok).To(BeTrue())
				Expect(props).To(HaveKeyWithValue("Make", "Sequoia"))
				Expect(props[GPSLatitude]).To(BeNumerically("~", 45.508333, 1e-6))
				Expect(props).To(HaveKeyWithValue(GPSLatitudeRef, "N"))
				Expect(props[GPSLongitude]).To(BeNumerically("~", 122.675, 1e-9))
				Expect(props).To(HaveKeyWithValue(GPSLongitudeRef, "W"))
			})
		})

		When("the file does not exist", func() {
			BeforeEach(func() {
				path = filepath.Join(GinkgoT().TempDir(), "missing.jpg")
			})

			It("returns no dictionary", func() {
				Expect(ok).To(BeFalse())
			})
		})

		When("the file is not an image", func() {
			BeforeEach(func() {
				path = writeFixture("notes.txt", []byte("just some text"))
			})

			It("returns no dictionary", func() {
				Expect(ok).To(BeFalse())
			})
		})
	})

	Describe("Location", func() {
		var (
			loc Coordinate
			ok  bool
		)

		JustBeforeEach(func() {
			loc, ok = reader.Location(path)
		})

		When("the references are south and west", func() {
			BeforeEach(func() {
				tiffData := buildTIFF(cameraEntries("DJI"), nil, gpsEntries(10, "S", 20, "W"))
				path = writeFixture("sw.jpg", buildJPEG(tiffData, nil))
			})

			It("negates both components", func() {
				Expect(ok).To(BeTrue())
				Expect(loc).To(Equal(Coordinate{Latitude: -10, Longitude: -20}))
			})
		})

		When("the references are north and east", func() {
			BeforeEach(func() {
				tiffData := buildTIFF(cameraEntries("DJI"), nil, gpsEntries(10.25, "N", 20.5, "E"))
				path = writeFixture("ne.jpg", buildJPEG(tiffData, nil))
			})

			It("keeps both components positive", func() {
				Expect(ok).To(BeTrue())
				Expect(loc).To(Equal(Coordinate{Latitude: 10.25, Longitude: 20.5}))
			})
		})

		When("the latitude is out of range", func() {
			BeforeEach(func() {
				tiffData := buildTIFF(cameraEntries("DJI"), nil, gpsEntries(95, "N", 20, "E"))
				path = writeFixture("invalid.jpg", buildJPEG(tiffData, nil))
			})

			It("rejects the coordinate", func() {
				Expect(ok).To(BeFalse())
			})
		})

		When("a reference is missing", func() {
			BeforeEach(func() {
				gps := gpsEntries(10, "N", 20, "E")[1:]
				tiffData := buildTIFF(cameraEntries("DJI"), nil, gps)
				path = writeFixture("noref.jpg", buildJPEG(tiffData, nil))
			})

			It("returns no location", func() {
				Expect(ok).To(BeFalse())
			})
		})

		When("the image has no GPS metadata", func() {
			BeforeEach(func() {
				path = writeFixture("plain.jpg", buildJPEG(buildTIFF(cameraEntries("DJI"), nil, nil), nil))
			})

			It("returns no location", func() {
				Expect(ok).To(BeFalse())
			})
		})
	})

	Describe("MakeName and FocalLength", func() {
		BeforeEach(func() {
			exifIFD := []ifdEntry{rationalEntry(0x920A, [2]uint32{45, 1})}
			tiffData := buildTIFF(cameraEntries("MicaSense"), exifIFD, gpsEntries(1, "N", 1, "E"))
			path = writeFixture("camera.jpg", buildJPEG(tiffData, nil))
		})

		It("projects single fields of the dictionary", func() {
			name, ok := reader.MakeName(path)
			Expect(ok).To(BeTrue())
			Expect(name).To(Equal("MicaSense"))

			length, ok := reader.FocalLength(path)
			Expect(ok).To(BeTrue())
			Expect(length).To(Equal(45.0))
		})

		When("the field has the wrong type", func() {
			BeforeEach(func() {
				packet := xmpPacket(`<exif:GPSFocalLength>wide</exif:GPSFocalLength>`)
				tiffData := buildTIFF(cameraEntries("MicaSense"), nil, gpsEntries(1, "N", 1, "E"))
				path = writeFixture("wrongtype.jpg", buildJPEG(tiffData, packet))
			})

			It("returns nothing", func() {
				_, ok := reader.FocalLength(path)
				Expect(ok).To(BeFalse())
			})
		})
	})

	Describe("BandName", func() {
		var (
			name string
			ok   bool
		)

		JustBeforeEach(func() {
			name, ok = reader.BandName(path)
		})

		When("the tag lists several bands", func() {
			BeforeEach(func() {
				packet := xmpPacket(`<Camera:BandName>
     <rdf:Seq>
      <rdf:li>Red</rdf:li>
      <rdf:li>Green</rdf:li>
      <rdf:li>Blue</rdf:li>
     </rdf:Seq>
    </Camera:BandName>`)
				path = writeFixture("bands.jpg", buildJPEG(nil, packet))
			})

			It("joins them with commas", func() {
				Expect(ok).To(BeTrue())
				Expect(name).To(Equal("Red, Green, Blue"))
			})
		})

		When("the list is empty", func() {
			BeforeEach(func() {
				packet := xmpPacket(`<Camera:BandName><rdf:Seq/></Camera:BandName>`)
				path = writeFixture("nobands.jpg", buildJPEG(nil, packet))
			})

			It("returns nothing", func() {
				Expect(ok).To(BeFalse())
			})
		})

		When("the tag is a plain string", func() {
			BeforeEach(func() {
				path = writeFixture("flat.jpg", buildJPEG(nil, xmpPacket(`<Camera:BandName>NIR</Camera:BandName>`)))
			})

			It("returns nothing", func() {
				Expect(ok).To(BeFalse())
			})
		})

		When("there is no XMP", func() {
			BeforeEach(func() {
				path = writeFixture("noxmp.jpg", buildJPEG(nil, nil))
			})

			It("returns nothing", func() {
				Expect(ok).To(BeFalse())
			})
		})
	})

	Describe("FlightMetadata", func() {
		var flight map[Key]float64

		JustBeforeEach(func() {
			flight = reader.FlightMetadata(path)
		})

		When("both values are present", func() {
			BeforeEach(func() {
				packet := xmpPacket(`<drone-dji:RelativeAltitude>+50.20</drone-dji:RelativeAltitude>
    <drone-dji:GimbalYawDegree>-12.5</drone-dji:GimbalYawDegree>`)
				path = writeFixture("flight.jpg", buildJPEG(nil, packet))
			})

			It("returns both", func() {
				Expect(flight).To(HaveLen(2))
				Expect(flight).To(HaveKeyWithValue(KeyRelativeAltitude, 50.2))
				Expect(flight).To(HaveKeyWithValue(KeyGimbalYawDegree, -12.5))
			})
		})

		When("the values are attributes", func() {
			BeforeEach(func() {
				packet := []byte(`<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description xmlns:drone-dji="http://www.dji.com/drone-dji/1.0/"
    drone-dji:RelativeAltitude="12" drone-dji:GimbalYawDegree="90.0"/>
 </rdf:RDF>
</x:xmpmeta>`)
				path = writeFixture("attrs.jpg", buildJPEG(nil, packet))
			})

			It("reads them the same way", func() {
				Expect(flight).To(HaveKeyWithValue(KeyRelativeAltitude, 12.0))
				Expect(flight).To(HaveKeyWithValue(KeyGimbalYawDegree, 90.0))
			})
		})

		When("only the altitude is present", func() {
			BeforeEach(func() {
				packet := xmpPacket(`<drone-dji:RelativeAltitude>50</drone-dji:RelativeAltitude>`)
				path = writeFixture("altitude.jpg", buildJPEG(nil, packet))
			})

			It("discards the partial result", func() {
				Expect(flight).NotTo(BeNil())
				Expect(flight).To(BeEmpty())
			})
		})

		When("a value is not numeric", func() {
			BeforeEach(func() {
				packet := xmpPacket(`<drone-dji:RelativeAltitude>high</drone-dji:RelativeAltitude>
    <drone-dji:GimbalYawDegree>10</drone-dji:GimbalYawDegree>`)
				path = writeFixture("text.jpg", buildJPEG(nil, packet))
			})

			It("returns an empty mapping", func() {
				Expect(flight).To(BeEmpty())
			})
		})
	})

	Describe("Summary", func() {
		When("the image carries no metadata", func() {
			BeforeEach(func() {
				path = writeFixture("bare.jpg", buildJPEG(nil, nil))
			})

			It("is empty", func() {
				Expect(nullable.IsEmpty(reader.Summary(path))).To(BeTrue())
			})
		})

		When("the image carries camera and flight metadata", func() {
			BeforeEach(func() {
				packet := xmpPacket(`<drone-dji:RelativeAltitude>30</drone-dji:RelativeAltitude>
    <drone-dji:GimbalYawDegree>45</drone-dji:GimbalYawDegree>`)
				tiffData := buildTIFF(cameraEntries("DJI"), nil, gpsEntries(10, "S", 20, "W"))
				path = writeFixture("summary.jpg", buildJPEG(tiffData, packet))
			})

			It("collects every value", func() {
				s := reader.Summary(path)
				Expect(nullable.IsEmpty(s)).To(BeFalse())
				Expect(s.Make).To(HaveValue(Equal("DJI")))
				Expect(s.Location).To(HaveValue(Equal(Coordinate{Latitude: -10, Longitude: -20})))
				Expect(s.RelativeAltitude).To(HaveValue(Equal(30.0)))
				Expect(s.GimbalYaw).To(HaveValue(Equal(45.0)))
				Expect(s.FocalLength).To(BeNil())
				Expect(s.BandName).To(BeNil())
			})
		})
	})

	When("the Reader is the zero value", func() {
		It("still reads", func() {
			tiffData := buildTIFF(cameraEntries("DJI"), nil, gpsEntries(10, "N", 20, "E"))
			path := writeFixture("zero.jpg", buildJPEG(tiffData, nil))
			var zero Reader
			_, ok := zero.Location(path)
			Expect(ok).To(BeTrue())
		})
	})
})
