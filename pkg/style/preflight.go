package style

// preflightCSS is the reset block emitted once at the top of any
// non-empty stylesheet.
const preflightCSS = "*,::before,::after{box-sizing:border-box;border-width:0;border-style:solid;border-color:currentColor;}" +
	"html{line-height:1.5;-webkit-text-size-adjust:100%;tab-size:4;font-family:ui-sans-serif,system-ui,sans-serif;}" +
	"body{margin:0;line-height:inherit;}" +
	"h1,h2,h3,h4,h5,h6{font-size:inherit;font-weight:inherit;}" +
	"a{color:inherit;text-decoration:inherit;}" +
	"b,strong{font-weight:bolder;}" +
	"code,kbd,samp,pre{font-family:ui-monospace,SFMono-Regular,Menlo,Monaco,Consolas,monospace;font-size:1em;}" +
	"small{font-size:80%;}" +
	"table{text-indent:0;border-color:inherit;border-collapse:collapse;}" +
	"button,input,optgroup,select,textarea{font-family:inherit;font-size:100%;font-weight:inherit;line-height:inherit;color:inherit;margin:0;padding:0;}" +
	"button,select{text-transform:none;}" +
	"button,[type='button'],[type='reset'],[type='submit']{-webkit-appearance:button;background-color:transparent;background-image:none;}" +
	"blockquote,dl,dd,h1,h2,h3,h4,h5,h6,hr,figure,p,pre{margin:0;}" +
	"fieldset{margin:0;padding:0;}" +
	"legend{padding:0;}" +
	"ol,ul,menu{list-style:none;margin:0;padding:0;}" +
	"textarea{resize:vertical;}" +
	"input::placeholder,textarea::placeholder{opacity:1;color:#9ca3af;}" +
	"button,[role='button']{cursor:pointer;}" +
	"img,svg,video,canvas,audio,iframe,embed,object{display:block;vertical-align:middle;}" +
	"img,video{max-width:100%;height:auto;}" +
	"[hidden]{display:none;}"

// PreflightCSS returns the fixed reset stylesheet.
func PreflightCSS() string {
	return preflightCSS
}
