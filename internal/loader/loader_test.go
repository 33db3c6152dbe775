package loader

import (
	"strings"
	"testing"

	"mosdl/internal/spec"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<specification xmlns:mal="http://www.ccsds.org/schema/ServiceSchema">
	<mal:area name="test" number="4711" version="2" comment="test area">
		<mal:service name="JobControl" number="1" comment="job handling">
			<mal:capabilitySet number="7">
				<mal:requestIP name="getJob" number="2" supportInReplay="true" comment="fetch one job">
					<mal:messages>
						<mal:request comment="the lookup">
							<mal:field name="jobId" canBeNull="false" comment="id of the job">
								<mal:type area="MAL" name="Identifier"/>
							</mal:field>
						</mal:request>
						<mal:response>
							<mal:field name="job" canBeNull="true">
								<mal:type area="test" service="JobControl" name="Job"/>
							</mal:field>
						</mal:response>
					</mal:messages>
					<mal:errors>
						<mal:errorRef comment="no such job">
							<mal:type area="test" name="NOT_FOUND"/>
							<mal:extraInformation comment="the failing id">
								<mal:type area="MAL" name="UInteger"/>
							</mal:extraInformation>
						</mal:errorRef>
						<mal:error name="FULL" number="73">
							<mal:extraInformation>
								<mal:type area="MAL" name="UInteger"/>
							</mal:extraInformation>
						</mal:error>
					</mal:errors>
				</mal:requestIP>
			</mal:capabilitySet>
			<mal:capabilitySet>
				<mal:sendIP name="ping" number="3">
					<mal:messages>
						<mal:send/>
					</mal:messages>
				</mal:sendIP>
			</mal:capabilitySet>
			<mal:dataTypes>
				<mal:composite name="Job" shortFormPart="1">
					<mal:field name="names" canBeNull="false">
						<mal:type area="MAL" name="Identifier" list="true"/>
					</mal:field>
				</mal:composite>
			</mal:dataTypes>
		</mal:service>
		<mal:dataTypes>
			<mal:fundamental name="Element"/>
			<mal:attribute name="JobRef" shortFormPart="6"/>
			<mal:composite name="Base">
				<mal:field name="stamp" canBeNull="false">
					<mal:type area="MAL" name="Time"/>
				</mal:field>
			</mal:composite>
			<mal:enumeration name="State" shortFormPart="5">
				<mal:item value="RUNNING" nvalue="1"/>
				<mal:item value="DONE" nvalue="2" comment="terminal"/>
			</mal:enumeration>
		</mal:dataTypes>
		<mal:errors>
			<mal:error name="NOT_FOUND" number="70001" comment="no such entity"/>
		</mal:errors>
	</mal:area>
</specification>`

func parseSample(t *testing.T) *spec.Specification {
	t.Helper()
	s, err := Parse([]byte(sampleXML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return s
}

func TestParseSpecification(t *testing.T) {
	s := parseSample(t)
	if len(s.Areas) != 1 {
		t.Fatalf("want 1 area, got %d", len(s.Areas))
	}
	area := s.Areas[0]
	if area.Name != "test" || area.Number != 4711 || area.Version != 2 {
		t.Fatalf("area header mismatch: %+v", area)
	}
	if area.Comment != "test area" {
		t.Fatalf("area comment = %q", area.Comment)
	}
	if len(area.Services) != 1 || len(area.DataTypes) != 4 || len(area.Errors) != 1 {
		t.Fatalf("area children mismatch: %d services, %d types, %d errors",
			len(area.Services), len(area.DataTypes), len(area.Errors))
	}

	svc := area.Services[0]
	if svc.Name != "JobControl" || svc.Number != 1 {
		t.Fatalf("service mismatch: %+v", svc)
	}
	if len(svc.Capabilities) != 2 {
		t.Fatalf("want 2 capability sets, got %d", len(svc.Capabilities))
	}
	if !svc.Capabilities[0].HasNumber || svc.Capabilities[0].Number != 7 {
		t.Fatalf("first capability set must carry number 7: %+v", svc.Capabilities[0])
	}
	if svc.Capabilities[1].HasNumber {
		t.Fatalf("second capability set must have no number")
	}

	op := svc.Capabilities[0].Operations[0]
	if op.Name != "getJob" || op.Number != 2 || op.Pattern != spec.PatternRequest || !op.Replay {
		t.Fatalf("operation mismatch: %+v", op)
	}
	if len(op.Messages) != 2 {
		t.Fatalf("request operation must have 2 messages, got %d", len(op.Messages))
	}
	if op.Messages[0].Stage != spec.StageRequest || op.Messages[1].Stage != spec.StageRequestResponse {
		t.Fatalf("stage mismatch: %v, %v", op.Messages[0].Stage, op.Messages[1].Stage)
	}
	jobID := op.Messages[0].Fields[0]
	if jobID.Name != "jobId" || jobID.Type.Nullable || jobID.Type.Area != "MAL" {
		t.Fatalf("jobId field mismatch: %+v", jobID)
	}
	job := op.Messages[1].Fields[0]
	if !job.Type.Nullable || job.Type.Service != "JobControl" {
		t.Fatalf("job field mismatch: %+v", job)
	}

	if len(op.Errors) != 2 {
		t.Fatalf("want 2 thrown errors, got %d", len(op.Errors))
	}
	ref, ok := op.Errors[0].(*spec.ErrorRef)
	if !ok {
		t.Fatalf("first thrown error must be a reference, got %T", op.Errors[0])
	}
	if ref.Type.Name != "NOT_FOUND" || ref.Comment != "no such job" {
		t.Fatalf("error ref mismatch: %+v", ref)
	}
	if ref.ExtraInfo == nil || ref.ExtraInfo.Comment != "the failing id" {
		t.Fatalf("error ref extra info mismatch: %+v", ref.ExtraInfo)
	}
	def, ok := op.Errors[1].(*spec.ErrorDef)
	if !ok {
		t.Fatalf("second thrown error must be a definition, got %T", op.Errors[1])
	}
	if def.Name != "FULL" || def.Number != 73 || def.ExtraInfo == nil {
		t.Fatalf("error def mismatch: %+v", def)
	}

	comp, ok := area.DataTypes[2].(*spec.Composite)
	if !ok || !comp.Abstract() {
		t.Fatalf("Base must be an abstract composite, got %#v", area.DataTypes[2])
	}
	enum, ok := area.DataTypes[3].(*spec.Enumeration)
	if !ok || len(enum.Items) != 2 || enum.Items[1].NValue != 2 {
		t.Fatalf("enumeration mismatch: %#v", area.DataTypes[3])
	}
	svcComp, ok := svc.DataTypes[0].(*spec.Composite)
	if !ok || svcComp.Abstract() || !svcComp.Fields[0].Type.List {
		t.Fatalf("service composite mismatch: %#v", svc.DataTypes[0])
	}
}

func TestParseVersionDefaultsToOne(t *testing.T) {
	s, err := Parse([]byte(`<specification><area name="A" number="1"/></specification>`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.Areas[0].Version != 1 {
		t.Fatalf("missing version must default to 1, got %d", s.Areas[0].Version)
	}
}

func TestParseRejectsErrorsOnSend(t *testing.T) {
	doc := `<specification><area name="A" number="1"><service name="S" number="1">
		<capabilitySet number="1">
			<sendIP name="fire" number="1">
				<messages><send/></messages>
				<errors><error name="E" number="1"/></errors>
			</sendIP>
		</capabilitySet>
	</service></area></specification>`
	_, err := Parse([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "cannot declare errors") {
		t.Fatalf("want send-errors rejection, got %v", err)
	}
}

func TestParseRejectsMissingStage(t *testing.T) {
	doc := `<specification><area name="A" number="1"><service name="S" number="1">
		<capabilitySet number="1">
			<requestIP name="half" number="1">
				<messages><request/></messages>
			</requestIP>
		</capabilitySet>
	</service></area></specification>`
	_, err := Parse([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "missing <response> message") {
		t.Fatalf("want missing stage rejection, got %v", err)
	}
}

func TestParseRejectsServiceScopeFundamental(t *testing.T) {
	doc := `<specification><area name="A" number="1"><service name="S" number="1">
		<dataTypes><fundamental name="Element"/></dataTypes>
	</service></area></specification>`
	_, err := Parse([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "only allowed at area scope") {
		t.Fatalf("want scope rejection, got %v", err)
	}
}

func TestParseRejectsOutOfRangeNumber(t *testing.T) {
	doc := `<specification><area name="A" number="70000"><service name="S" number="99999"/></area></specification>`
	_, err := Parse([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("want range rejection, got %v", err)
	}
}

// Error numbers live in a wider space than area and service numbers: the
// standard MO errors start at 65536 and agency areas use 70001 upwards.
func TestParseAcceptsErrorNumbersAbove16Bit(t *testing.T) {
	doc := `<specification><area name="COM" number="2">
		<errors><error name="INVALID" number="70001"/></errors>
	</area></specification>`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := s.Areas[0].Errors[0].Number; got != 70001 {
		t.Fatalf("error number = %d, want 70001", got)
	}
}

func TestParseRejectsUnexpectedRoot(t *testing.T) {
	_, err := Parse([]byte(`<serviceList/>`))
	if err == nil || !strings.Contains(err.Error(), "unexpected root element") {
		t.Fatalf("want root rejection, got %v", err)
	}
}

// Decomposed input must come out NFC-composed, so the same logical name
// always renders to the same bytes.
func TestParseNormalizesNames(t *testing.T) {
	doc := "<specification><area name=\"Géode\" number=\"1\"/></specification>"
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := s.Areas[0].Name; got != "Géode" {
		t.Fatalf("name not NFC-normalized: %q", got)
	}
}
